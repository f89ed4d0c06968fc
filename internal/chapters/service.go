package chapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/litpress/go-press/books"
	"github.com/litpress/go-press/internal/identity"
	"github.com/litpress/go-press/internal/logging"
	"github.com/litpress/go-press/internal/markdown"
	"github.com/litpress/go-press/internal/validation"
	"github.com/litpress/go-press/pkg/interfaces"
	"github.com/litpress/go-press/purchases"
)

// maxSlugAttempts bounds the suffix probe when a title collides with an
// existing chapter slug in the same book.
const maxSlugAttempts = 50

// ChapterRepository abstracts storage operations for chapter entities.
type ChapterRepository interface {
	Create(ctx context.Context, record *Chapter) (*Chapter, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Chapter, error)
	GetByBookAndSlug(ctx context.Context, bookID uuid.UUID, slug string) (*Chapter, error)
	GetByBookAndPath(ctx context.Context, bookID uuid.UUID, sourcePath string) (*Chapter, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*Chapter, error)
	Update(ctx context.Context, record *Chapter) (*Chapter, error)
}

// BookRepository resolves books for visibility checks and view composition.
type BookRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*books.Book, error)
	GetBySlug(ctx context.Context, slug string) (*books.Book, error)
}

// PurchaseRepository resolves and persists purchases for gating and bookmarks.
type PurchaseRepository interface {
	GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*purchases.Purchase, error)
	Update(ctx context.Context, record *purchases.Purchase) (*purchases.Purchase, error)
}

// SectionExtractor derives in-page navigation entries from Markdown source.
type SectionExtractor func(source []byte) ([]Section, error)

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderOptions overrides the rendering configuration applied during sync.
func WithRenderOptions(opts interfaces.RenderOptions) ServiceOption {
	return func(s *service) {
		s.renderOpts = opts
	}
}

// WithURLResolver attaches a resolver used to stamp reading URLs onto views.
func WithURLResolver(resolver URLResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.urls = resolver
		}
	}
}

// WithSectionExtractor overrides section derivation.
func WithSectionExtractor(extractor SectionExtractor) ServiceOption {
	return func(s *service) {
		if extractor != nil {
			s.sections = extractor
		}
	}
}

// WithFrontMatterSchema validates each synced front matter payload against the
// supplied JSON schema before persisting.
func WithFrontMatterSchema(schema map[string]any) ServiceOption {
	return func(s *service) {
		s.frontMatterSchema = schema
	}
}

// service implements Service.
type service struct {
	chapters  ChapterRepository
	books     BookRepository
	purchases PurchaseRepository
	renderer  interfaces.MarkdownRenderer

	renderOpts        interfaces.RenderOptions
	frontMatterSchema map[string]any
	sections          SectionExtractor
	urls              URLResolver
	now               func() time.Time
	logger            interfaces.Logger
}

// NewService constructs a chapter service with the required dependencies.
func NewService(chapterRepo ChapterRepository, bookRepo BookRepository, purchaseRepo PurchaseRepository, renderer interfaces.MarkdownRenderer, opts ...ServiceOption) Service {
	s := &service{
		chapters:   chapterRepo,
		books:      bookRepo,
		purchases:  purchaseRepo,
		renderer:   renderer,
		renderOpts: interfaces.DefaultRenderOptions(),
		sections:   markdown.ExtractSections,
		now:        time.Now,
		logger:     logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sync upserts one chapter from its source file. The record identity is
// derived from the book and source path so re-syncing a file updates in place,
// and the reading position comes from the file name. Chapters are never
// deleted here; files removed from the source simply stop receiving updates.
func (s *service) Sync(ctx context.Context, req SyncRequest) (*Chapter, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := validation.ValidatePayload(s.frontMatterSchema, req.FrontMatter.Raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontMatterInvalid, err)
	}

	if _, err := s.books.GetByID(ctx, req.BookID); err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			return nil, ErrBookRequired
		}
		return nil, err
	}

	sourcePath := strings.TrimSpace(req.SourcePath)
	position, err := DerivePosition(sourcePath)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.FrontMatter.Title)

	existing, err := s.chapters.GetByBookAndPath(ctx, req.BookID, sourcePath)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		existing = nil
	}

	logger := logging.WithSyncContext(s.logger, sourcePath, req.BookID.String(), syncAction(existing))

	record := existing
	if record == nil {
		record = &Chapter{
			ID:         identity.ChapterUUID(req.BookID, sourcePath),
			BookID:     req.BookID,
			SourcePath: sourcePath,
			CreatedAt:  s.now(),
		}
	}

	titleChanged := record.Title != title
	record.Title = title
	record.Position = position
	record.IsFree = req.FrontMatter.Free
	record.UpdatedAt = s.now()

	// Slugs stay stable across re-syncs unless the title itself changed, so
	// published URLs survive content-only edits.
	if existing == nil || titleChanged {
		chapterSlug, err := s.uniqueSlug(ctx, req.BookID, record.ID, title)
		if err != nil {
			return nil, err
		}
		record.Slug = chapterSlug
	}

	if err := s.renderChapterBody(record, req); err != nil {
		return nil, err
	}

	applyFrontMatterMetadata(record, req.FrontMatter)

	if existing == nil {
		created, err := s.chapters.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		logger.Info("chapter created", "chapter_id", created.ID.String(), "slug", created.Slug, "position", created.Position)
		return created, nil
	}

	updated, err := s.chapters.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	logger.Info("chapter updated", "chapter_id", updated.ID.String(), "slug", updated.Slug, "position", updated.Position)
	return updated, nil
}

// GetBySlug resolves a chapter through its book and composes the read model.
// Unpublished books hide their chapters unless the caller is an admin, and
// paid chapter bodies are stripped unless the chapter is free, the caller
// purchased the book, or the caller is an admin.
func (s *service) GetBySlug(ctx context.Context, req GetBySlugRequest) (*ChapterView, error) {
	book, err := s.books.GetBySlug(ctx, strings.TrimSpace(req.BookSlug))
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			return nil, &NotFoundError{Resource: "chapter", Key: req.BookSlug + "/" + req.ChapterSlug}
		}
		return nil, err
	}
	if !book.IsPublished && !req.Admin {
		return nil, &NotFoundError{Resource: "chapter", Key: req.BookSlug + "/" + req.ChapterSlug}
	}

	chapter, err := s.chapters.GetByBookAndSlug(ctx, book.ID, strings.TrimSpace(req.ChapterSlug))
	if err != nil {
		return nil, err
	}

	var purchase *purchases.Purchase
	if req.UserID != nil && *req.UserID != uuid.Nil {
		record, err := s.purchases.GetByUserAndBook(ctx, *req.UserID, book.ID)
		if err != nil && !errors.Is(err, purchases.ErrPurchaseNotFound) {
			return nil, err
		}
		purchase = record
	}

	view := buildChapterView(chapter, book, purchase, req.Admin)

	if s.urls != nil {
		url, err := s.urls.ChapterURL(book.Slug, chapter.Slug)
		if err != nil {
			s.logger.Warn("chapter url resolution failed", "chapter_id", chapter.ID.String(), "error", err)
		} else {
			view.URL = url
		}
	}

	return view, nil
}

// AddBookmark stores a reader's position in a chapter on their purchase of the
// owning book. Each chapter keeps at most one bookmark per purchase; a second
// save replaces the first.
func (s *service) AddBookmark(ctx context.Context, req AddBookmarkRequest) (*purchases.Bookmark, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	chapter, err := s.chapters.GetByID(ctx, req.ChapterID)
	if err != nil {
		return nil, err
	}

	purchase, err := s.purchases.GetByUserAndBook(ctx, req.UserID, chapter.BookID)
	if err != nil {
		if errors.Is(err, purchases.ErrPurchaseNotFound) {
			return nil, &PermissionError{
				UserID: req.UserID,
				BookID: chapter.BookID,
				Reason: "no purchase found for book",
			}
		}
		return nil, err
	}

	bookmark := purchases.Bookmark{
		ChapterID:   chapter.ID,
		ContentHash: strings.TrimSpace(req.ContentHash),
		Excerpt:     strings.TrimSpace(req.Excerpt),
		CreatedAt:   s.now(),
	}
	purchase.ReplaceBookmark(bookmark)
	purchase.UpdatedAt = s.now()

	if _, err := s.purchases.Update(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("bookmark saved",
		"chapter_id", chapter.ID.String(),
		"user_id", req.UserID.String(),
		"book_id", chapter.BookID.String(),
	)
	return &bookmark, nil
}

// ListByBook returns the book's chapters in reading order.
func (s *service) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*Chapter, error) {
	if bookID == uuid.Nil {
		return nil, ErrBookRequired
	}
	return s.chapters.ListByBook(ctx, bookID)
}

func (s *service) renderChapterBody(record *Chapter, req SyncRequest) error {
	record.Content = req.Body

	rendered, err := s.renderer.RenderWithOptions([]byte(req.Body), s.renderOpts)
	if err != nil {
		return fmt.Errorf("render chapter %s: %w", record.SourcePath, err)
	}
	record.ContentHTML = string(rendered)

	sections, err := s.sections([]byte(req.Body))
	if err != nil {
		return fmt.Errorf("extract sections %s: %w", record.SourcePath, err)
	}
	record.Sections = sections

	record.Excerpt = nil
	record.ExcerptHTML = nil
	if excerpt := strings.TrimSpace(req.FrontMatter.Excerpt); excerpt != "" {
		record.Excerpt = &excerpt
		renderedExcerpt, err := s.renderer.RenderWithOptions([]byte(excerpt), s.renderOpts)
		if err != nil {
			return fmt.Errorf("render excerpt %s: %w", record.SourcePath, err)
		}
		excerptHTML := string(renderedExcerpt)
		record.ExcerptHTML = &excerptHTML
	}

	return nil
}

func (s *service) uniqueSlug(ctx context.Context, bookID, chapterID uuid.UUID, title string) (string, error) {
	base, err := slug.Normalize(title)
	if err != nil || strings.TrimSpace(base) == "" {
		return "", ErrSlugInvalid
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}

		existing, err := s.chapters.GetByBookAndSlug(ctx, bookID, candidate)
		if err != nil {
			var notFound *NotFoundError
			if errors.As(err, &notFound) {
				return candidate, nil
			}
			return "", err
		}
		if existing.ID == chapterID {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrDuplicateSlug, base)
}

func applyFrontMatterMetadata(record *Chapter, meta interfaces.FrontMatter) {
	record.SEOTitle = nil
	if title := strings.TrimSpace(meta.SEOTitle); title != "" {
		record.SEOTitle = &title
	}
	record.SEODescription = nil
	if desc := strings.TrimSpace(meta.SEODescription); desc != "" {
		record.SEODescription = &desc
	}
	record.SEOKeywords = nil
	if len(meta.SEOKeywords) > 0 {
		record.SEOKeywords = append([]string(nil), meta.SEOKeywords...)
	}
}

func buildChapterView(chapter *Chapter, book *books.Book, purchase *purchases.Purchase, admin bool) *ChapterView {
	purchased := purchase != nil
	entitled := admin || chapter.IsFree || purchased

	view := &ChapterView{
		ID:             chapter.ID,
		BookID:         chapter.BookID,
		Title:          chapter.Title,
		Slug:           chapter.Slug,
		SourcePath:     chapter.SourcePath,
		IsFree:         chapter.IsFree,
		Position:       chapter.Position,
		Excerpt:        chapter.Excerpt,
		ExcerptHTML:    chapter.ExcerptHTML,
		SEOTitle:       chapter.SEOTitle,
		SEODescription: chapter.SEODescription,
		SEOKeywords:    append([]string(nil), chapter.SEOKeywords...),
		Sections:       append([]Section(nil), chapter.Sections...),
		Book: BookSummary{
			ID:          book.ID,
			Slug:        book.Slug,
			Title:       book.Title,
			Author:      book.Author,
			PriceCents:  book.PriceCents,
			IsPublished: book.IsPublished,
		},
		Purchased: purchased,
		CreatedAt: chapter.CreatedAt,
		UpdatedAt: chapter.UpdatedAt,
	}

	if entitled {
		view.Content = chapter.Content
		view.ContentHTML = chapter.ContentHTML
	}
	if purchased {
		view.Bookmark = purchase.BookmarkFor(chapter.ID)
	}

	return view
}

func syncAction(existing *Chapter) string {
	if existing == nil {
		return "create"
	}
	return "update"
}
