package chapterscmd

import (
	"context"
	"errors"
	"path/filepath"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/litpress/go-press/chapters"
	"github.com/litpress/go-press/internal/commands"
	"github.com/litpress/go-press/internal/logging"
	"github.com/litpress/go-press/internal/markdown"
	"github.com/litpress/go-press/pkg/interfaces"
)

const (
	syncFileOperation      = "chapters.sync_file"
	syncDirectoryOperation = "chapters.sync_directory"
)

// ErrSyncIncomplete is returned when a directory sync finished with failures.
var ErrSyncIncomplete = errors.New("chapters command: sync finished with errors")

var (
	_ command.Commander[SyncFileCommand]      = (*SyncFileHandler)(nil)
	_ command.Commander[SyncDirectoryCommand] = (*SyncDirectoryHandler)(nil)
)

// DocumentLoader reads chapter source documents from a directory.
type DocumentLoader interface {
	LoadFile(ctx context.Context, path string) (*interfaces.Document, error)
	LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error)
}

// LoaderFactory builds a loader rooted at the supplied base path.
type LoaderFactory func(basePath string, recursive bool) (DocumentLoader, error)

func defaultLoaderFactory(basePath string, recursive bool) (DocumentLoader, error) {
	return markdown.NewDirLoader(basePath, markdown.LoaderConfig{Recursive: recursive})
}

// SyncFileHandler syncs one chapter source file via the shared command handler foundation.
type SyncFileHandler struct {
	inner *commands.Handler[SyncFileCommand]
}

// NewSyncFileHandler creates a handler bound to the supplied chapter service.
func NewSyncFileHandler(service chapters.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SyncFileCommand]) *SyncFileHandler {
	return newSyncFileHandler(service, logger, defaultLoaderFactory, opts...)
}

func newSyncFileHandler(service chapters.Service, logger interfaces.Logger, loaders LoaderFactory, opts ...commands.HandlerOption[SyncFileCommand]) *SyncFileHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncFileCommand) error {
		loader, err := loaders(filepath.Dir(msg.Path), false)
		if err != nil {
			return err
		}

		doc, err := loader.LoadFile(ctx, filepath.Base(msg.Path))
		if err != nil {
			return err
		}

		_, err = service.Sync(ctx, chapters.SyncRequest{
			BookID:      msg.BookID,
			SourcePath:  msg.Path,
			FrontMatter: doc.FrontMatter,
			Body:        string(doc.Body),
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[SyncFileCommand]{
		commands.WithLogger[SyncFileCommand](baseLogger),
		commands.WithOperation[SyncFileCommand](syncFileOperation),
		commands.WithMessageFields(func(msg SyncFileCommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.BookID != uuid.Nil {
				fields["book_id"] = msg.BookID
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncFileCommand].
func (h *SyncFileHandler) Execute(ctx context.Context, msg SyncFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncDirectoryHandler syncs a directory of chapter sources via the shared command handler foundation.
type SyncDirectoryHandler struct {
	inner *commands.Handler[SyncDirectoryCommand]
}

// NewSyncDirectoryHandler creates a handler bound to the supplied chapter service.
func NewSyncDirectoryHandler(service chapters.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	return newSyncDirectoryHandler(service, logger, defaultLoaderFactory, opts...)
}

func newSyncDirectoryHandler(service chapters.Service, logger interfaces.Logger, loaders LoaderFactory, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncDirectoryCommand) error {
		loader, err := loaders(msg.Directory, msg.Recursive)
		if err != nil {
			return err
		}

		docs, err := loader.LoadDirectory(ctx, ".")
		if err != nil {
			return err
		}

		var synced, failed int
		for _, doc := range docs {
			_, err := service.Sync(ctx, chapters.SyncRequest{
				BookID:      msg.BookID,
				SourcePath:  doc.FilePath,
				FrontMatter: doc.FrontMatter,
				Body:        string(doc.Body),
			})
			if err != nil {
				failed++
				logging.WithSyncContext(baseLogger, doc.FilePath, msg.BookID.String(), "sync").
					Error("chapter sync failed", "error", err)
				if !msg.ContinueOnError {
					return err
				}
				continue
			}
			synced++
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory":    msg.Directory,
			"synced_count": synced,
			"failed_count": failed,
		}).Info("chapters.command.sync_directory.completed")

		if failed > 0 {
			return ErrSyncIncomplete
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncDirectoryCommand]{
		commands.WithLogger[SyncDirectoryCommand](baseLogger),
		commands.WithOperation[SyncDirectoryCommand](syncDirectoryOperation),
		commands.WithMessageFields(func(msg SyncDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.BookID != uuid.Nil {
				fields["book_id"] = msg.BookID
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			if msg.ContinueOnError {
				fields["continue_on_error"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncDirectoryCommand].
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
