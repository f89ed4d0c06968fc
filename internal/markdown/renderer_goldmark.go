package markdown

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"regexp"
	"strconv"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/litpress/go-press/pkg/interfaces"
)

// GoldmarkRenderer implements interfaces.MarkdownRenderer using the goldmark
// engine. The renderer is stateless; every call builds its pipeline from the
// supplied options, so concurrent renders never share configuration.
type GoldmarkRenderer struct {
	defaults interfaces.RenderOptions
}

// NewGoldmarkRenderer constructs a renderer with the supplied default options.
func NewGoldmarkRenderer(defaults interfaces.RenderOptions) *GoldmarkRenderer {
	return &GoldmarkRenderer{defaults: defaults}
}

// Render satisfies interfaces.MarkdownRenderer using the default configuration.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	return r.RenderWithOptions(markdown, r.defaults)
}

// RenderWithOptions renders Markdown into HTML using the provided options.
// HTML entities in the source are decoded before parsing so content exported
// from web editors renders the characters the author typed.
func (r *GoldmarkRenderer) RenderWithOptions(markdown []byte, opts interfaces.RenderOptions) ([]byte, error) {
	engine := newEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(DecodeEntities(markdown), &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeEntities resolves HTML entities (&amp;, &quot;, ...) in raw Markdown.
func DecodeEntities(source []byte) []byte {
	if !bytes.ContainsRune(source, '&') {
		return source
	}
	return []byte(stdhtml.UnescapeString(string(source)))
}

func newEngine(opts interfaces.RenderOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)
	if opts.HighlightStyle != "" || opts.GuessLanguage {
		exts = append(exts, newHighlighting(opts))
	}

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(
			util.Prioritized(newChapterNodeRenderer(opts), 100),
		),
	}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
		goldmark.WithExtensions(exts...),
	)
}

func newHighlighting(opts interfaces.RenderOptions) goldmark.Extender {
	style := strings.TrimSpace(opts.HighlightStyle)
	if style == "" {
		style = "monokai"
	}
	return highlighting.NewHighlighting(
		highlighting.WithStyle(style),
		highlighting.WithGuessLanguage(opts.GuessLanguage),
		highlighting.WithFormatOptions(
			chromahtml.TabWidth(4),
		),
	)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

// chapterNodeRenderer overrides link, image, and heading output to apply the
// chapter reading conventions: external links open safely in a new tab, images
// span the column with a fixed alt text, and selected heading levels become
// self-linking anchors.
type chapterNodeRenderer struct {
	opts         interfaces.RenderOptions
	anchorLevels map[int]struct{}
}

func newChapterNodeRenderer(opts interfaces.RenderOptions) renderer.NodeRenderer {
	levels := make(map[int]struct{}, len(opts.AnchoredHeadingLevels))
	for _, level := range opts.AnchoredHeadingLevels {
		levels[level] = struct{}{}
	}
	return &chapterNodeRenderer{opts: opts, anchorLevels: levels}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *chapterNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *chapterNodeRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	if isExternalLink(n.Destination) {
		if r.opts.OpenLinksInNewTab {
			_, _ = w.WriteString(` target="_blank"`)
		}
		if rel := strings.TrimSpace(r.opts.ExternalLinkRel); rel != "" {
			_, _ = w.WriteString(` rel="`)
			_, _ = w.WriteString(rel)
			_ = w.WriteByte('"')
		}
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func (r *chapterNodeRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	alt := strings.TrimSpace(r.opts.ImageAltText)
	if alt == "" {
		alt = string(util.EscapeHTML(nodeText(n, source)))
	}

	_, _ = w.WriteString(`<img src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.WriteString(alt)
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	if r.opts.FullWidthImages {
		_, _ = w.WriteString(` style="width:100%"`)
	}
	_ = w.WriteByte('>')
	return ast.WalkSkipChildren, nil
}

func (r *chapterNodeRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)

	anchor := ""
	if _, ok := r.anchorLevels[n.Level]; ok {
		anchor = AnchorSlug(string(nodeText(n, source)))
	}

	if entering {
		_, _ = w.WriteString("<h")
		_, _ = w.WriteString(strconv.Itoa(n.Level))
		if anchor != "" {
			_, _ = w.WriteString(` id="`)
			_, _ = w.WriteString(anchor)
			_ = w.WriteByte('"')
		}
		_ = w.WriteByte('>')
		if anchor != "" {
			_, _ = w.WriteString(`<a class="heading-anchor" href="#`)
			_, _ = w.WriteString(anchor)
			_, _ = w.WriteString(`">`)
		}
		return ast.WalkContinue, nil
	}

	if anchor != "" {
		_, _ = w.WriteString("</a>")
	}
	_, _ = w.WriteString("</h")
	_, _ = w.WriteString(strconv.Itoa(n.Level))
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func isExternalLink(destination []byte) bool {
	dest := strings.ToLower(string(destination))
	return strings.HasPrefix(dest, "http://") ||
		strings.HasPrefix(dest, "https://") ||
		strings.HasPrefix(dest, "//")
}

func nodeText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(source))
			continue
		}
		buf.Write(nodeText(child, source))
	}
	return buf.Bytes()
}

var nonWordRun = regexp.MustCompile(`[^a-z0-9]+`)

// AnchorSlug derives the URL-safe anchor for a heading: lower-cased text with
// runs of non-word characters collapsed to single hyphens.
func AnchorSlug(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	return strings.Trim(nonWordRun.ReplaceAllString(lowered, "-"), "-")
}
