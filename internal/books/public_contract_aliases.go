package books

import pressbooks "github.com/litpress/go-press/books"

type (
	Service           = pressbooks.Service
	Book              = pressbooks.Book
	CreateBookRequest = pressbooks.CreateBookRequest
	GetOption         = pressbooks.GetOption
	GetOptions        = pressbooks.GetOptions
	NotFoundError     = pressbooks.NotFoundError
)

var (
	ErrSlugRequired  = pressbooks.ErrSlugRequired
	ErrSlugInvalid   = pressbooks.ErrSlugInvalid
	ErrSlugExists    = pressbooks.ErrSlugExists
	ErrTitleRequired = pressbooks.ErrTitleRequired
	ErrBookNotFound  = pressbooks.ErrBookNotFound

	AsAdmin           = pressbooks.AsAdmin
	ResolveGetOptions = pressbooks.ResolveGetOptions
)
