package purchases

import presspurchases "github.com/litpress/go-press/purchases"

type (
	Service               = presspurchases.Service
	Purchase              = presspurchases.Purchase
	Bookmark              = presspurchases.Bookmark
	CreatePurchaseRequest = presspurchases.CreatePurchaseRequest
	NotFoundError         = presspurchases.NotFoundError
)

var (
	ErrUserRequired     = presspurchases.ErrUserRequired
	ErrBookRequired     = presspurchases.ErrBookRequired
	ErrPurchaseNotFound = presspurchases.ErrPurchaseNotFound
	ErrPurchaseExists   = presspurchases.ErrPurchaseExists
)
