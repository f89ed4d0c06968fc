package markdown

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/litpress/go-press/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	checksum := sha256.Sum256(source)

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		Checksum:     checksum[:],
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title          string         `yaml:"title"`
	Excerpt        string         `yaml:"excerpt"`
	Free           bool           `yaml:"isFree"`
	SEOTitle       string         `yaml:"seoTitle"`
	SEODescription string         `yaml:"seoDescription"`
	SEOKeywords    []string       `yaml:"seoKeywords"`
	Custom         map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+6)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Excerpt != "" {
		raw["excerpt"] = env.Excerpt
	}
	if env.SEOTitle != "" {
		raw["seoTitle"] = env.SEOTitle
	}
	if env.SEODescription != "" {
		raw["seoDescription"] = env.SEODescription
	}
	if len(env.SEOKeywords) > 0 {
		raw["seoKeywords"] = append([]string(nil), env.SEOKeywords...)
	}
	raw["isFree"] = env.Free

	return interfaces.FrontMatter{
		Title:          env.Title,
		Excerpt:        env.Excerpt,
		Free:           env.Free,
		SEOTitle:       env.SEOTitle,
		SEODescription: env.SEODescription,
		SEOKeywords:    append([]string(nil), env.SEOKeywords...),
		Custom:         cloneMap(env.Custom),
		Raw:            raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
