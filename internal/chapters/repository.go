package chapters

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Chapter slugs are only unique within a book, so the repository identifier
// falls back to the record id. Compound lookups live on BunChapterRepository.
func NewChapterRepository(db *bun.DB) repository.Repository[*Chapter] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Chapter]{
		NewRecord: func() *Chapter { return &Chapter{} },
		GetID: func(ch *Chapter) uuid.UUID {
			return ch.ID
		},
		SetID: func(ch *Chapter, id uuid.UUID) {
			ch.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(ch *Chapter) string {
			if ch == nil {
				return ""
			}
			return ch.ID.String()
		},
	})
}
