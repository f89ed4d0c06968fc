package di

import (
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	pressbooks "github.com/litpress/go-press/books"
	presschapters "github.com/litpress/go-press/chapters"
	"github.com/litpress/go-press/internal/books"
	"github.com/litpress/go-press/internal/chapters"
	"github.com/litpress/go-press/internal/logging"
	"github.com/litpress/go-press/internal/logging/gologger"
	"github.com/litpress/go-press/internal/markdown"
	"github.com/litpress/go-press/internal/purchases"
	"github.com/litpress/go-press/internal/runtimeconfig"
	"github.com/litpress/go-press/pkg/interfaces"
	presspurchases "github.com/litpress/go-press/purchases"
)

// Container wires module dependencies. Services default to in-memory
// repositories until a bun database is supplied.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	bookRepo     books.BookRepository
	chapterRepo  chapters.ChapterRepository
	purchaseRepo purchases.PurchaseRepository

	renderer     interfaces.MarkdownRenderer
	urlResolver  chapters.URLResolver
	routeManager *urlkit.RouteManager

	bookSvc     pressbooks.Service
	chapterSvc  presschapters.Service
	purchaseSvc presspurchases.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the SQL database repositories are built on.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the default logger provider binding.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMarkdownRenderer overrides the default goldmark renderer binding.
func WithMarkdownRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithURLResolver overrides the default chapter URL resolver binding.
func WithURLResolver(resolver chapters.URLResolver) Option {
	return func(c *Container) {
		c.urlResolver = resolver
	}
}

// WithBookService overrides the default book service binding.
func WithBookService(svc pressbooks.Service) Option {
	return func(c *Container) {
		c.bookSvc = svc
	}
}

// WithChapterService overrides the default chapter service binding.
func WithChapterService(svc presschapters.Service) Option {
	return func(c *Container) {
		c.chapterSvc = svc
	}
}

// WithPurchaseService overrides the default purchase service binding.
func WithPurchaseService(svc presspurchases.Service) Option {
	return func(c *Container) {
		c.purchaseSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		bookRepo:     books.NewMemoryBookRepository(),
		chapterRepo:  chapters.NewMemoryChapterRepository(),
		purchaseRepo: purchases.NewMemoryPurchaseRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureMarkdown()
	c.configureNavigation()

	if c.bookSvc == nil {
		c.bookSvc = books.NewService(
			c.bookRepo,
			books.WithLogger(logging.BooksLogger(c.loggerProvider)),
		)
	}

	if c.purchaseSvc == nil {
		c.purchaseSvc = purchases.NewService(
			c.purchaseRepo,
			purchases.WithLogger(logging.PurchasesLogger(c.loggerProvider)),
		)
	}

	if c.chapterSvc == nil {
		chapterOpts := []chapters.ServiceOption{
			chapters.WithLogger(logging.ChaptersLogger(c.loggerProvider)),
			chapters.WithRenderOptions(c.renderOptions()),
		}
		if c.urlResolver != nil {
			chapterOpts = append(chapterOpts, chapters.WithURLResolver(c.urlResolver))
		}
		if len(cfg.Sync.FrontMatterSchema) > 0 {
			chapterOpts = append(chapterOpts, chapters.WithFrontMatterSchema(cfg.Sync.FrontMatterSchema))
		}
		c.chapterSvc = chapters.NewService(
			c.chapterRepo,
			c.bookRepo,
			c.purchaseRepo,
			c.renderer,
			chapterOpts...,
		)
	}

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	provider := strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider))
	format := c.Config.Logging.Format
	if provider == "console" && strings.TrimSpace(format) == "" {
		format = "console"
	}

	built, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: configure logger provider: %w", err)
	}

	c.loggerProvider = built
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	if strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "memory") {
		return
	}

	c.bookRepo = books.NewBunBookRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.chapterRepo = chapters.NewBunChapterRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.purchaseRepo = purchases.NewBunPurchaseRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureMarkdown() {
	if c.renderer != nil {
		return
	}
	c.renderer = markdown.NewGoldmarkRenderer(c.renderOptions())
}

func (c *Container) configureNavigation() {
	if c.urlResolver != nil {
		return
	}

	navCfg := c.Config.Navigation
	if navCfg.RouteConfig == nil {
		return
	}

	manager := urlkit.NewRouteManager(navCfg.RouteConfig)
	c.routeManager = manager

	c.urlResolver = chapters.NewURLKitResolver(chapters.URLKitResolverOptions{
		Manager:      manager,
		Group:        strings.TrimSpace(navCfg.URLKit.Group),
		Route:        strings.TrimSpace(navCfg.URLKit.Route),
		BookParam:    strings.TrimSpace(navCfg.URLKit.BookParam),
		ChapterParam: strings.TrimSpace(navCfg.URLKit.ChapterParam),
	})
}

func (c *Container) renderOptions() interfaces.RenderOptions {
	md := c.Config.Markdown
	if md.IsZero() {
		return interfaces.DefaultRenderOptions()
	}
	return interfaces.RenderOptions{
		Extensions:            md.Extensions,
		HardWraps:             md.HardWraps,
		Unsafe:                md.Unsafe,
		OpenLinksInNewTab:     md.OpenLinksInNewTab,
		ExternalLinkRel:       md.ExternalLinkRel,
		FullWidthImages:       md.FullWidthImages,
		ImageAltText:          md.ImageAltText,
		AnchoredHeadingLevels: md.AnchoredHeadingLevels,
		HighlightStyle:        md.HighlightStyle,
		GuessLanguage:         md.GuessLanguage,
	}
}

// BookRepository exposes the configured book repository.
func (c *Container) BookRepository() books.BookRepository {
	return c.bookRepo
}

// ChapterRepository exposes the configured chapter repository.
func (c *Container) ChapterRepository() chapters.ChapterRepository {
	return c.chapterRepo
}

// PurchaseRepository exposes the configured purchase repository.
func (c *Container) PurchaseRepository() purchases.PurchaseRepository {
	return c.purchaseRepo
}

// BookService returns the configured book service.
func (c *Container) BookService() pressbooks.Service {
	return c.bookSvc
}

// ChapterService returns the configured chapter service.
func (c *Container) ChapterService() presschapters.Service {
	return c.chapterSvc
}

// PurchaseService returns the configured purchase service.
func (c *Container) PurchaseService() presspurchases.Service {
	return c.purchaseSvc
}

// MarkdownRenderer exposes the renderer applied to chapter bodies.
func (c *Container) MarkdownRenderer() interfaces.MarkdownRenderer {
	return c.renderer
}

// LoggerProvider exposes the configured logger provider, which may be nil when
// the logging feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// RouteManager exposes the urlkit route manager when navigation is configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}
