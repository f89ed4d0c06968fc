package books

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Book is the canonical record for a published title. Chapters reference a
// book by id; purchases grant a user access to its paid chapters.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID             uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Slug           string    `bun:"slug,notnull,unique" json:"slug"`
	Title          string    `bun:"title,notnull" json:"title"`
	Author         string    `bun:"author" json:"author,omitempty"`
	Excerpt        *string   `bun:"excerpt" json:"excerpt,omitempty"`
	PriceCents     int       `bun:"price_cents,notnull,default:0" json:"price_cents"`
	IsPublished    bool      `bun:"is_published,notnull,default:false" json:"is_published"`
	SourceRepo     string    `bun:"source_repo" json:"source_repo,omitempty"`
	SEOTitle       *string   `bun:"seo_title" json:"seo_title,omitempty"`
	SEODescription *string   `bun:"seo_description" json:"seo_description,omitempty"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
