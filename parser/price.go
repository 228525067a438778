package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError reports price text that could not be converted to a number
type ParseError struct {
	Text string // original text, before cleaning
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable price %q", e.Text)
}

// NormalizePrice converts locale-formatted price text like "1 200 000,00 руб."
// into an exact decimal value. No rounding is applied; the precision of the
// source text is preserved.
//
// Spaces are stripped before the comma is rewritten to a dot: the page
// separates thousands with spaces (or NBSP) and uses the comma only as the
// decimal separator, so that ordering must not change.
func NormalizePrice(text, currencyUnit string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(text, " ", " ")
	if currencyUnit != "" {
		cleaned = strings.ReplaceAll(cleaned, currencyUnit+".", "")
		cleaned = strings.ReplaceAll(cleaned, currencyUnit, "")
	}
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return decimal.Decimal{}, &ParseError{Text: text}
	}

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, &ParseError{Text: text}
	}
	return price, nil
}
