package filter

import (
	"sort"

	"torgi-scraper/models"

	"github.com/shopspring/decimal"
)

// FilterByRange returns the lots whose price lies within [min, max], bounds
// inclusive. A nil bound means unbounded on that side; with both bounds absent
// the input slice is returned unchanged.
func FilterByRange(lots []models.Lot, min, max *decimal.Decimal) []models.Lot {
	if min == nil && max == nil {
		return lots
	}

	var filtered []models.Lot
	for _, lot := range lots {
		if min != nil && lot.Price.Cmp(*min) < 0 {
			continue
		}
		if max != nil && lot.Price.Cmp(*max) > 0 {
			continue
		}
		filtered = append(filtered, lot)
	}
	return filtered
}

// SortByPriceDescending orders lots from most to least expensive, in place.
// The sort is stable, so lots with equal prices keep their page order.
func SortByPriceDescending(lots []models.Lot) []models.Lot {
	sort.SliceStable(lots, func(i, j int) bool {
		return lots[i].Price.Cmp(lots[j].Price) > 0
	})
	return lots
}
