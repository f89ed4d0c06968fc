package chapters

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/litpress/go-press/books"
	"github.com/litpress/go-press/purchases"
)

// Chapter is a single content unit belonging to a book. Records are created on
// the first sync from the book's source repository and updated on subsequent
// syncs; this code path never deletes them.
//
// Uniqueness of (book_id, slug) and (book_id, source_path) is enforced by
// compound indexes; violations surface as write failures.
type Chapter struct {
	bun.BaseModel `bun:"table:chapters,alias:ch"`

	ID             uuid.UUID `bun:",pk,type:uuid" json:"id"`
	BookID         uuid.UUID `bun:"book_id,notnull,type:uuid" json:"book_id"`
	Title          string    `bun:"title,notnull" json:"title"`
	Slug           string    `bun:"slug,notnull" json:"slug"`
	SourcePath     string    `bun:"source_path,notnull" json:"source_path"`
	IsFree         bool      `bun:"is_free,notnull,default:false" json:"is_free"`
	Position       int       `bun:"position,notnull,default:0" json:"position"`
	Content        string    `bun:"content" json:"content,omitempty"`
	ContentHTML    string    `bun:"content_html" json:"content_html,omitempty"`
	Excerpt        *string   `bun:"excerpt" json:"excerpt,omitempty"`
	ExcerptHTML    *string   `bun:"excerpt_html" json:"excerpt_html,omitempty"`
	SEOTitle       *string   `bun:"seo_title" json:"seo_title,omitempty"`
	SEODescription *string   `bun:"seo_description" json:"seo_description,omitempty"`
	SEOKeywords    []string  `bun:"seo_keywords,type:jsonb" json:"seo_keywords,omitempty"`
	Sections       []Section `bun:"sections,type:jsonb" json:"sections,omitempty"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Book *books.Book `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
}

// Section describes one in-page navigation target derived from a level-2
// heading in the chapter body.
type Section struct {
	Text   string `json:"text"`
	Level  int    `json:"level"`
	Anchor string `json:"anchor"`
}

// BookSummary carries the book fields exposed alongside a chapter read.
type BookSummary struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	PriceCents  int       `json:"price_cents"`
	IsPublished bool      `json:"is_published"`
}

// ChapterView is the composed read model returned by GetBySlug. It is built by
// value from the chapter and book records; mutating it never touches storage.
// Content and ContentHTML are empty when the caller is not entitled to the
// full chapter body.
type ChapterView struct {
	ID             uuid.UUID           `json:"id"`
	BookID         uuid.UUID           `json:"book_id"`
	Title          string              `json:"title"`
	Slug           string              `json:"slug"`
	SourcePath     string              `json:"source_path"`
	IsFree         bool                `json:"is_free"`
	Position       int                 `json:"position"`
	Content        string              `json:"content,omitempty"`
	ContentHTML    string              `json:"content_html,omitempty"`
	Excerpt        *string             `json:"excerpt,omitempty"`
	ExcerptHTML    *string             `json:"excerpt_html,omitempty"`
	SEOTitle       *string             `json:"seo_title,omitempty"`
	SEODescription *string             `json:"seo_description,omitempty"`
	SEOKeywords    []string            `json:"seo_keywords,omitempty"`
	Sections       []Section           `json:"sections,omitempty"`
	URL            string              `json:"url,omitempty"`
	Book           BookSummary         `json:"book"`
	Purchased      bool                `json:"purchased"`
	Bookmark       *purchases.Bookmark `json:"bookmark,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
