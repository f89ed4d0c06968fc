package press

import (
	"github.com/litpress/go-press/books"
	"github.com/litpress/go-press/chapters"
	"github.com/litpress/go-press/internal/di"
	"github.com/litpress/go-press/pkg/interfaces"
	"github.com/litpress/go-press/purchases"
)

// BookService exports the book service contract for consumers of the press package.
type BookService = books.Service

// ChapterService exports the chapter service contract.
type ChapterService = chapters.Service

// PurchaseService exports the purchase service contract.
type PurchaseService = purchases.Service

// Module represents the top level press runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a press module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Books returns the configured book service.
func (m *Module) Books() BookService {
	return m.container.BookService()
}

// Chapters returns the configured chapter service.
func (m *Module) Chapters() ChapterService {
	return m.container.ChapterService()
}

// Purchases returns the configured purchase service.
func (m *Module) Purchases() PurchaseService {
	return m.container.PurchaseService()
}

// Markdown returns the renderer applied to chapter bodies.
func (m *Module) Markdown() interfaces.MarkdownRenderer {
	return m.container.MarkdownRenderer()
}

// LoggerProvider returns the configured logger provider, nil when logging is disabled.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}
