package purchases

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Purchase records that a user owns access to a book's paid content. Reader
// bookmarks are embedded in the purchase document, so a bookmark is implicitly
// scoped to the purchasing user.
type Purchase struct {
	bun.BaseModel `bun:"table:purchases,alias:p"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	UserID      uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id"`
	BookID      uuid.UUID  `bun:"book_id,notnull,type:uuid" json:"book_id"`
	AmountCents int        `bun:"amount_cents,notnull,default:0" json:"amount_cents"`
	Bookmarks   []Bookmark `bun:"bookmarks,type:jsonb" json:"bookmarks,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Bookmark is a saved reading position within a chapter: a content hash to
// locate the paragraph plus the excerpt shown in the reader's bookmark list.
type Bookmark struct {
	ChapterID   uuid.UUID `json:"chapter_id"`
	ContentHash string    `json:"content_hash"`
	Excerpt     string    `json:"excerpt"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookmarkFor returns the bookmark stored for the given chapter, if any.
func (p *Purchase) BookmarkFor(chapterID uuid.UUID) *Bookmark {
	if p == nil {
		return nil
	}
	for i := range p.Bookmarks {
		if p.Bookmarks[i].ChapterID == chapterID {
			bookmark := p.Bookmarks[i]
			return &bookmark
		}
	}
	return nil
}

// ReplaceBookmark drops any existing bookmark for the same chapter and appends
// the supplied one, keeping at most one bookmark per chapter.
func (p *Purchase) ReplaceBookmark(bookmark Bookmark) {
	kept := make([]Bookmark, 0, len(p.Bookmarks)+1)
	for _, existing := range p.Bookmarks {
		if existing.ChapterID == bookmark.ChapterID {
			continue
		}
		kept = append(kept, existing)
	}
	p.Bookmarks = append(kept, bookmark)
}
