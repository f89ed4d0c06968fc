package chapterscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	syncFileMessageType      = "press.chapters.sync_file"
	syncDirectoryMessageType = "press.chapters.sync_directory"
)

// SyncFileCommand syncs a single Markdown chapter source into the catalog.
type SyncFileCommand struct {
	// BookID selects the book the chapter belongs to.
	BookID uuid.UUID `json:"book_id"`
	// Path selects the Markdown file (relative or absolute) to sync.
	Path string `json:"path"`
}

// Type implements command.Message.
func (SyncFileCommand) Type() string { return syncFileMessageType }

// Validate ensures the book and file inputs are present before handlers execute.
func (cmd SyncFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BookID, validation.By(func(value any) error {
			if value.(uuid.UUID) == uuid.Nil {
				return validation.NewError("press.chapters.sync_file.book_required", "book id is required")
			}
			return nil
		})),
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("press.chapters.sync_file.path_required", "path is required")
			}
			return nil
		})),
	)
}

// SyncDirectoryCommand walks a directory of Markdown chapter sources and syncs
// every matching file into the catalog.
type SyncDirectoryCommand struct {
	// BookID selects the book the chapters belong to.
	BookID uuid.UUID `json:"book_id"`
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// Recursive walks nested directories when true.
	Recursive bool `json:"recursive,omitempty"`
	// ContinueOnError keeps syncing remaining files after a failure when true.
	ContinueOnError bool `json:"continue_on_error,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures the book and directory inputs are present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BookID, validation.By(func(value any) error {
			if value.(uuid.UUID) == uuid.Nil {
				return validation.NewError("press.chapters.sync_directory.book_required", "book id is required")
			}
			return nil
		})),
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("press.chapters.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
