package interfaces

import "time"

// RenderOptions configures a single Markdown render pass. Options are passed
// by value and never mutated by the renderer, so a caller can hold one set of
// defaults and hand it to concurrent renders without coordination.
type RenderOptions struct {
	// Extensions selects goldmark extensions by name (gfm, table, linkify...).
	Extensions []string
	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
	// Unsafe allows raw HTML blocks to pass through untouched.
	Unsafe bool
	// OpenLinksInNewTab adds target="_blank" to links resolving outside the site.
	OpenLinksInNewTab bool
	// ExternalLinkRel is the rel attribute applied to external links.
	ExternalLinkRel string
	// FullWidthImages forces images to span the reading column.
	FullWidthImages bool
	// ImageAltText replaces image alt text when set.
	ImageAltText string
	// AnchoredHeadingLevels lists heading levels wrapped in self-linking anchors.
	AnchoredHeadingLevels []int
	// HighlightStyle names the chroma style used for fenced code blocks.
	HighlightStyle string
	// GuessLanguage enables lexer detection for code fences without a language hint.
	GuessLanguage bool
}

// DefaultRenderOptions returns the render configuration used for chapter
// content: external links open in a new tab with safe rel attributes, images
// span the full column, and level 2/4 headings become navigable anchors.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Extensions:            []string{"gfm", "linkify"},
		OpenLinksInNewTab:     true,
		ExternalLinkRel:       "noopener noreferrer",
		FullWidthImages:       true,
		ImageAltText:          "Chapter illustration",
		AnchoredHeadingLevels: []int{2, 4},
		HighlightStyle:        "monokai",
		GuessLanguage:         true,
	}
}

// MarkdownRenderer converts Markdown source into HTML.
type MarkdownRenderer interface {
	Render(markdown []byte) ([]byte, error)
	RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
}

// FrontMatter carries the structured metadata parsed from the head of a
// chapter source file.
type FrontMatter struct {
	Title          string
	Excerpt        string
	Free           bool
	SEOTitle       string
	SEODescription string
	SEOKeywords    []string
	Custom         map[string]any
	Raw            map[string]any
}

// Document is a chapter source file after front matter extraction. BodyHTML is
// populated lazily by callers that need rendered output.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	Checksum     []byte
	LastModified time.Time
}
