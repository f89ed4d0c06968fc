package chapters

import presschapters "github.com/litpress/go-press/chapters"

type (
	Service            = presschapters.Service
	Chapter            = presschapters.Chapter
	Section            = presschapters.Section
	BookSummary        = presschapters.BookSummary
	ChapterView        = presschapters.ChapterView
	SyncRequest        = presschapters.SyncRequest
	GetBySlugRequest   = presschapters.GetBySlugRequest
	AddBookmarkRequest = presschapters.AddBookmarkRequest
	NotFoundError      = presschapters.NotFoundError
	PermissionError    = presschapters.PermissionError
)

var (
	ErrBookRequired       = presschapters.ErrBookRequired
	ErrTitleRequired      = presschapters.ErrTitleRequired
	ErrSourcePathRequired = presschapters.ErrSourcePathRequired
	ErrOrderUnknown       = presschapters.ErrOrderUnknown
	ErrSlugInvalid        = presschapters.ErrSlugInvalid
	ErrDuplicateSlug      = presschapters.ErrDuplicateSlug
	ErrUserRequired       = presschapters.ErrUserRequired
	ErrChapterNotFound    = presschapters.ErrChapterNotFound
	ErrPurchaseRequired   = presschapters.ErrPurchaseRequired
	ErrFrontMatterInvalid = presschapters.ErrFrontMatterInvalid
)
