package models

import "github.com/shopspring/decimal"

// Lot represents one auction entry from the listing table
type Lot struct {
	Code  string          // numeric lot code, unique within a page
	Title string          // lot title, single-spaced
	Price decimal.Decimal // starting price, exact decimal
	URL   string          // absolute link to the lot page, empty if the row had no link
}
