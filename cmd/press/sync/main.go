package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	press "github.com/litpress/go-press"
	"github.com/litpress/go-press/books"
	chapterscmd "github.com/litpress/go-press/internal/commands/chapters"
	"github.com/litpress/go-press/internal/di"
	"github.com/litpress/go-press/internal/logging"
	"github.com/litpress/go-press/pkg/storage"
)

func main() {
	_ = godotenv.Load()
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("press sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("press-sync", flag.ExitOnError)
	driver := fs.String("driver", os.Getenv("PRESS_DB_DRIVER"), "Database driver (sqlite or postgres)")
	dsn := fs.String("dsn", os.Getenv("PRESS_DB_DSN"), "Database connection string")
	bookSlug := fs.String("book", "", "Slug of the book the chapters belong to")
	bookTitle := fs.String("book-title", "", "Title used when the book must be created")
	bookAuthor := fs.String("book-author", "", "Author recorded when the book must be created")
	publish := fs.Bool("publish", false, "Publish the book when creating it")
	contentDir := fs.String("content-dir", "content", "Path to the chapter Markdown root")
	recursive := fs.Bool("recursive", false, "Walk nested directories when discovering chapter files")
	continueOnError := fs.Bool("continue-on-error", false, "Keep syncing remaining files after a failure")
	migrate := fs.Bool("migrate", true, "Apply embedded SQL migrations before syncing")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*bookSlug) == "" {
		return fmt.Errorf("book is required")
	}

	db, err := storage.Open(storage.Config{Driver: *driver, DSN: *dsn})
	if err != nil {
		return err
	}
	defer db.Close()

	if *migrate {
		if err := storage.Migrate(db, press.GetMigrationsFS(), "data/sql/migrations"); err != nil {
			return err
		}
	}

	cfg := press.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Sync.Enabled = true
	cfg.Sync.ContentDir = *contentDir
	cfg.Sync.Recursive = *recursive
	cfg.Sync.ContinueOnError = *continueOnError

	module, err := press.New(cfg, di.WithBunDB(db))
	if err != nil {
		return fmt.Errorf("initialise press: %w", err)
	}

	ctx := context.Background()

	book, err := ensureBook(ctx, module.Books(), *bookSlug, *bookTitle, *bookAuthor, *publish)
	if err != nil {
		return err
	}

	handler := chapterscmd.NewSyncDirectoryHandler(
		module.Chapters(),
		logging.CommandsLogger(module.LoggerProvider()),
	)
	if err := handler.Execute(ctx, chapterscmd.SyncDirectoryCommand{
		BookID:          book.ID,
		Directory:       *contentDir,
		Recursive:       *recursive,
		ContinueOnError: *continueOnError,
	}); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}

	fmt.Fprintf(os.Stdout, "chapters synced for book %s\n", book.Slug)
	return nil
}

func ensureBook(ctx context.Context, svc press.BookService, slug, title, author string, publish bool) (*books.Book, error) {
	book, err := svc.GetBySlug(ctx, slug, books.AsAdmin())
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, books.ErrBookNotFound) {
		return nil, fmt.Errorf("resolve book %s: %w", slug, err)
	}

	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("book %s does not exist; book-title is required to create it", slug)
	}

	created, err := svc.Create(ctx, books.CreateBookRequest{
		Slug:        slug,
		Title:       title,
		Author:      author,
		IsPublished: publish,
	})
	if err != nil {
		return nil, fmt.Errorf("create book %s: %w", slug, err)
	}
	return created, nil
}
