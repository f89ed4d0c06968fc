package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrLoggingProviderRequired indicates logging is enabled without a provider.
var ErrLoggingProviderRequired = errors.New("press config: logging provider is required when logging feature is enabled")

// ErrLoggingProviderUnknown indicates an unsupported logging provider.
var ErrLoggingProviderUnknown = errors.New("press config: logging provider is invalid")

// ErrLoggingLevelInvalid indicates an unsupported logging level.
var ErrLoggingLevelInvalid = errors.New("press config: logging level is invalid")

// ErrLoggingFormatInvalid indicates an unsupported logging format.
var ErrLoggingFormatInvalid = errors.New("press config: logging format is invalid")

// ErrContentDirRequired indicates sync is enabled without a content directory.
var ErrContentDirRequired = errors.New("press config: content directory is required when sync is enabled")

// ErrAdvancedCacheRequiresEnabledCache ensures repository caching builds only when cache is enabled.
var ErrAdvancedCacheRequiresEnabledCache = errors.New("press config: repository cache feature requires cache to be enabled")

// Config aggregates feature flags and adapter bindings for the press module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled    bool
	Storage    StorageConfig
	Cache      CacheConfig
	Navigation NavigationConfig
	Sync       SyncConfig
	Markdown   MarkdownConfig
	Features   Features
	Commands   CommandsConfig
	Logging    LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NavigationConfig captures routing configuration for chapter URL resolution.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based resolver.
type URLKitResolverConfig struct {
	Group        string
	Route        string
	BookParam    string
	ChapterParam string
}

// SyncConfig captures filesystem behaviour for chapter ingestion.
type SyncConfig struct {
	Enabled         bool
	ContentDir      string
	Pattern         string
	Recursive       bool
	ContinueOnError bool
	// FrontMatterSchema optionally validates every synced front matter payload.
	FrontMatterSchema map[string]any
}

// MarkdownConfig mirrors the render options applied to chapter bodies.
type MarkdownConfig struct {
	Extensions            []string
	HardWraps             bool
	Unsafe                bool
	OpenLinksInNewTab     bool
	ExternalLinkRel       string
	FullWidthImages       bool
	ImageAltText          string
	AnchoredHeadingLevels []int
	HighlightStyle        string
	GuessLanguage         bool
}

// Features toggles module functionality.
type Features struct {
	Commands      bool
	Logger        bool
	AdvancedCache bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a book-reading deployment.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Navigation: NavigationConfig{
			URLKit: URLKitResolverConfig{
				Group:        "books",
				Route:        "chapter",
				BookParam:    "book",
				ChapterParam: "chapter",
			},
		},
		Sync: SyncConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  false,
		},
		Markdown: MarkdownConfig{
			Extensions:            []string{"gfm", "linkify"},
			OpenLinksInNewTab:     true,
			ExternalLinkRel:       "noopener noreferrer",
			FullWidthImages:       true,
			ImageAltText:          "Chapter illustration",
			AnchoredHeadingLevels: []int{2, 4},
			HighlightStyle:        "monokai",
			GuessLanguage:         true,
		},
		Features: Features{},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Sync.Enabled {
		if strings.TrimSpace(cfg.Sync.ContentDir) == "" {
			return ErrContentDirRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

// IsZero reports whether the markdown block was left unset, letting callers
// fall back to the renderer defaults instead of an all-false options struct.
func (cfg MarkdownConfig) IsZero() bool {
	return len(cfg.Extensions) == 0 &&
		!cfg.HardWraps &&
		!cfg.Unsafe &&
		!cfg.OpenLinksInNewTab &&
		cfg.ExternalLinkRel == "" &&
		!cfg.FullWidthImages &&
		cfg.ImageAltText == "" &&
		len(cfg.AnchoredHeadingLevels) == 0 &&
		cfg.HighlightStyle == "" &&
		!cfg.GuessLanguage
}
