package books

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewBookRepository(db *bun.DB) repository.Repository[*Book] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Book]{
		NewRecord: func() *Book { return &Book{} },
		GetID: func(b *Book) uuid.UUID {
			return b.ID
		},
		SetID: func(b *Book, id uuid.UUID) {
			b.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(b *Book) string {
			return b.Slug
		},
	})
}
