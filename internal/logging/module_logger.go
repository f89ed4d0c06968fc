package logging

import (
	"context"
	"strings"

	"github.com/litpress/go-press/pkg/interfaces"
)

const (
	rootModule      = "press"
	chaptersModule  = "press.chapters"
	booksModule     = "press.books"
	purchasesModule = "press.purchases"
	markdownModule  = "press.markdown"
	commandsModule  = "press.commands"
)

const (
	fieldSourcePath = "source_path"
	fieldBookID     = "book_id"
	fieldSyncAction = "sync_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ChaptersLogger returns the logger namespace reserved for the chapter service.
func ChaptersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, chaptersModule)
}

// BooksLogger returns the logger namespace reserved for the book service.
func BooksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, booksModule)
}

// PurchasesLogger returns the logger namespace reserved for the purchase service.
func PurchasesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, purchasesModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown rendering.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithSyncContext enriches the provided logger with common chapter sync fields
// such as source path, book id, and sync action. Empty values are ignored.
func WithSyncContext(logger interfaces.Logger, path, bookID, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(bookID); trimmed != "" {
		fields[fieldBookID] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldSyncAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
