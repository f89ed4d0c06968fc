// Package markdown renders chapter Markdown sources into reader-facing HTML
// and derives the section metadata used for in-page navigation.
package markdown
