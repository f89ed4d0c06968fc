package purchases

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewPurchaseRepository(db *bun.DB) repository.Repository[*Purchase] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Purchase]{
		NewRecord: func() *Purchase { return &Purchase{} },
		GetID: func(p *Purchase) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Purchase, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(p *Purchase) string {
			if p == nil {
				return ""
			}
			return p.ID.String()
		},
	})
}
