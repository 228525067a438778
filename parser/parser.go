package parser

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"torgi-scraper/config"
	"torgi-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// Parser extracts lot records from listing-page HTML
type Parser struct {
	cfg  config.ExtractionConfig
	base *url.URL
}

// NewParser creates a Parser for the given table layout. Relative lot links
// are resolved against baseURL.
func NewParser(cfg config.ExtractionConfig, baseURL string) (*Parser, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return &Parser{cfg: cfg, base: base}, nil
}

// ExtractLots scans every table row of the document in order and returns the
// lots it can interpret. Rows it cannot interpret are skipped, never reported:
// the result is always a valid (possibly empty) sequence. The only error is a
// document that cannot be read at all.
func (p *Parser) ExtractLots(htmlContent string) ([]models.Lot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var lots []models.Lot
	rowsSeen := 0

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		rowsSeen++
		if lot, ok := p.extractLot(row); ok {
			lots = append(lots, lot)
		}
	})

	log.Printf("Parser: kept %d of %d table rows\n", len(lots), rowsSeen)
	return lots, nil
}

// extractLot interprets a single table row. A row qualifies only if it has
// enough cells and its first cell is a bare lot number; everything else on the
// page (headers, spacers, pager rows) fails one of those checks.
func (p *Parser) extractLot(row *goquery.Selection) (models.Lot, bool) {
	cells := row.Find("td")
	if cells.Length() < p.cfg.MinCells {
		return models.Lot{}, false
	}

	code := collapseWhitespace(cells.Eq(p.cfg.CodeColumn).Text())
	if !isDigits(code) {
		return models.Lot{}, false
	}

	titleCell := cells.Eq(p.cfg.TitleColumn)
	title := collapseWhitespace(titleCell.Text())
	if title == "" {
		return models.Lot{}, false
	}

	lotURL := ""
	if href, ok := titleCell.Find("a[href]").First().Attr("href"); ok {
		lotURL = p.resolveLink(href)
	}

	price, err := NormalizePrice(cells.Eq(p.cfg.PriceColumn).Text(), p.cfg.CurrencyUnit)
	if err != nil {
		// Unparsable price disqualifies the whole row, no partial lots
		return models.Lot{}, false
	}
	if price.IsNegative() {
		return models.Lot{}, false
	}

	return models.Lot{
		Code:  code,
		Title: title,
		Price: price,
		URL:   lotURL,
	}, true
}

// resolveLink turns a row's href into an absolute address, or "" if the href
// is unusable
func (p *Parser) resolveLink(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return p.base.ResolveReference(ref).String()
}

// collapseWhitespace trims text and squeezes every whitespace run (including
// newlines and NBSP) into a single space
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, " ", " ")), " ")
}

// isDigits reports whether s is a non-empty string of decimal digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
