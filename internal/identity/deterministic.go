package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// BookUUID derives the identity of a book from its slug.
func BookUUID(slug string) uuid.UUID {
	return UUID("go-press:book:" + strings.ToLower(strings.TrimSpace(slug)))
}

// ChapterUUID derives the identity of a chapter from its book and source path.
// Re-syncing the same file never mints a new chapter id.
func ChapterUUID(bookID uuid.UUID, sourcePath string) uuid.UUID {
	return UUID("go-press:chapter:" + bookID.String() + ":" + strings.TrimSpace(sourcePath))
}

// PurchaseUUID derives the identity of a purchase from its user and book.
func PurchaseUUID(userID, bookID uuid.UUID) uuid.UUID {
	return UUID("go-press:purchase:" + userID.String() + ":" + bookID.String())
}
