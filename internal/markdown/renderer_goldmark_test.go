package markdown

import (
	"strings"
	"testing"

	"github.com/litpress/go-press/pkg/interfaces"
)

func TestGoldmarkRendererRendersBasicMarkdown(t *testing.T) {
	r := NewGoldmarkRenderer(interfaces.DefaultRenderOptions())

	out, err := r.Render([]byte("# Title\n\nHello **world**"))
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<h1") {
		t.Fatalf("expected h1 in output, got %q", html)
	}
	if !strings.Contains(html, "<strong>world</strong>") {
		t.Fatalf("expected bold text in output, got %q", html)
	}
}

func TestGoldmarkRendererExternalLinks(t *testing.T) {
	r := NewGoldmarkRenderer(interfaces.DefaultRenderOptions())

	out, err := r.Render([]byte("[docs](https://example.com/docs) and [local](/about)"))
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, `<a href="https://example.com/docs" target="_blank" rel="noopener noreferrer">`) {
		t.Fatalf("expected external link with target and rel, got %q", html)
	}
	if strings.Contains(html, `href="/about" target="_blank"`) {
		t.Fatalf("internal link must not open in a new tab, got %q", html)
	}
}

func TestGoldmarkRendererImages(t *testing.T) {
	r := NewGoldmarkRenderer(interfaces.DefaultRenderOptions())

	out, err := r.Render([]byte("![original alt](/img/figure-1.png)"))
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, `alt="Chapter illustration"`) {
		t.Fatalf("expected fixed alt text, got %q", html)
	}
	if !strings.Contains(html, `style="width:100%"`) {
		t.Fatalf("expected full width image styling, got %q", html)
	}
}

func TestGoldmarkRendererAnchoredHeadings(t *testing.T) {
	r := NewGoldmarkRenderer(interfaces.DefaultRenderOptions())

	out, err := r.Render([]byte("## Getting Started\n\n### Not Anchored\n\n#### Deep Dive: Part 2"))
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, `<h2 id="getting-started"><a class="heading-anchor" href="#getting-started">`) {
		t.Fatalf("expected anchored h2, got %q", html)
	}
	if !strings.Contains(html, `<h4 id="deep-dive-part-2">`) {
		t.Fatalf("expected anchored h4, got %q", html)
	}
	if strings.Contains(html, `<h3 id=`) {
		t.Fatalf("h3 must not carry an anchor id, got %q", html)
	}
}

func TestGoldmarkRendererDecodesEntities(t *testing.T) {
	r := NewGoldmarkRenderer(interfaces.DefaultRenderOptions())

	out, err := r.Render([]byte("Ship it &amp; celebrate"))
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}

	if !strings.Contains(string(out), "Ship it &amp; celebrate") {
		t.Fatalf("expected decoded then re-escaped ampersand, got %q", string(out))
	}
	if strings.Contains(string(out), "&amp;amp;") {
		t.Fatalf("double-escaped entity leaked into output: %q", string(out))
	}
}

func TestGoldmarkRendererHardWrapsOption(t *testing.T) {
	r := NewGoldmarkRenderer(interfaces.DefaultRenderOptions())

	opts := interfaces.DefaultRenderOptions()
	opts.HardWraps = true

	out, err := r.RenderWithOptions([]byte("line one\nline two"), opts)
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}
	if !strings.Contains(string(out), "<br") {
		t.Fatalf("expected hard wrap break, got %q", string(out))
	}

	plain, err := r.Render([]byte("line one\nline two"))
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}
	if strings.Contains(string(plain), "<br") {
		t.Fatalf("default render must not hard wrap, got %q", string(plain))
	}
}

func TestAnchorSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Getting Started", "getting-started"},
		{"Deep Dive: Part 2!", "deep-dive-part-2"},
		{"  Spaced   Out  ", "spaced-out"},
		{"UPPER case", "upper-case"},
		{"---", ""},
	}

	for _, tc := range cases {
		if got := AnchorSlug(tc.in); got != tc.want {
			t.Fatalf("AnchorSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
