package markdown

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/litpress/go-press/chapters"
)

// sectionHeadingLevel selects which headings become in-page navigation targets.
const sectionHeadingLevel = 2

// ExtractSections walks the Markdown AST and collects every level-2 heading as
// an ordered section entry. This is a parse-only pass; no HTML is produced.
func ExtractSections(source []byte) ([]chapters.Section, error) {
	// Segment offsets refer to the parsed buffer, so the decoded copy must be
	// used for both parsing and text extraction.
	decoded := DecodeEntities(source)
	engine := goldmark.New(goldmark.WithExtensions(collectExtensions(nil)...))
	root := engine.Parser().Parse(text.NewReader(decoded))

	sections := []chapters.Section{}
	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != sectionHeadingLevel {
			return ast.WalkContinue, nil
		}
		headingText := string(nodeText(heading, decoded))
		sections = append(sections, chapters.Section{
			Text:   headingText,
			Level:  heading.Level,
			Anchor: AnchorSlug(headingText),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown sections: %w", err)
	}
	return sections, nil
}
