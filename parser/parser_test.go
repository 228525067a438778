package parser

import (
	"fmt"
	"strings"
	"testing"

	"torgi-scraper/config"

	"github.com/shopspring/decimal"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(config.GetDefaultConfig().Extraction, "https://torgi.org")
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	return p
}

// lotRow builds a 7-cell table row in the listing page's shape
func lotRow(code, title, price string) string {
	return fmt.Sprintf(
		`<tr><td>%s</td><td>%s</td><td>c2</td><td>c3</td><td>c4</td><td>%s</td><td>c6</td></tr>`,
		code, title, price)
}

func TestExtractLotsEndToEnd(t *testing.T) {
	html := `<html><body><table>` +
		lotRow("42", `<a href="/x">Lot A</a>`, "1 000,50 руб.") +
		lotRow("N/A", "header row", "1 000,50 руб.") +
		`</table></body></html>`

	lots, err := newTestParser(t).ExtractLots(html)
	if err != nil {
		t.Fatalf("ExtractLots() error = %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("ExtractLots() returned %d lots, want 1", len(lots))
	}

	lot := lots[0]
	if lot.Code != "42" {
		t.Errorf("Code = %q, want \"42\"", lot.Code)
	}
	if lot.Title != "Lot A" {
		t.Errorf("Title = %q, want \"Lot A\"", lot.Title)
	}
	if !lot.Price.Equal(decimal.RequireFromString("1000.50")) {
		t.Errorf("Price = %s, want 1000.50", lot.Price)
	}
	if lot.URL != "https://torgi.org/x" {
		t.Errorf("URL = %q, want \"https://torgi.org/x\"", lot.URL)
	}
}

func TestExtractLotsSkipsNonQualifyingRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{
			"fewer than seven cells",
			`<tr><td>42</td><td>Lot</td><td>x</td><td>x</td><td>x</td><td>1 000,50 руб.</td></tr>`,
		},
		{"non-digit code", lotRow("12a", "Lot", "1 000,50 руб.")},
		{"empty code", lotRow("", "Lot", "1 000,50 руб.")},
		{"header text code", lotRow("Код", "Lot", "1 000,50 руб.")},
		{"empty title", lotRow("42", "", "1 000,50 руб.")},
		{"unparsable price", lotRow("42", "Lot", "договорная")},
		{"empty price", lotRow("42", "Lot", "")},
		{"negative price", lotRow("42", "Lot", "-100 руб.")},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lots, err := p.ExtractLots("<table>" + tt.row + "</table>")
			if err != nil {
				t.Fatalf("ExtractLots() error = %v", err)
			}
			if len(lots) != 0 {
				t.Errorf("ExtractLots() kept the row, want it skipped")
			}
		})
	}
}

func TestExtractLotsBadPriceDropsOnlyThatRow(t *testing.T) {
	html := "<table>" +
		lotRow("1", "First", "100 руб.") +
		lotRow("2", "Broken", "цена уточняется") +
		lotRow("3", "Third", "300 руб.") +
		"</table>"

	lots, err := newTestParser(t).ExtractLots(html)
	if err != nil {
		t.Fatalf("ExtractLots() error = %v", err)
	}
	if len(lots) != 2 {
		t.Fatalf("ExtractLots() returned %d lots, want 2", len(lots))
	}
	// Document order preserved
	if lots[0].Code != "1" || lots[1].Code != "3" {
		t.Errorf("ExtractLots() order = [%s %s], want [1 3]", lots[0].Code, lots[1].Code)
	}
}

func TestExtractLotsInvariants(t *testing.T) {
	html := "<table>" +
		lotRow("12", "Lot A", "0,00 руб.") +
		lotRow("0034", `<a href="/lot/34">Lot B</a>`, "2 500 000 руб.") +
		lotRow("what", "not a lot", "100 руб.") +
		"</table>"

	lots, err := newTestParser(t).ExtractLots(html)
	if err != nil {
		t.Fatalf("ExtractLots() error = %v", err)
	}
	for _, lot := range lots {
		if !isDigits(lot.Code) {
			t.Errorf("lot code %q is not digit-only", lot.Code)
		}
		if lot.Price.IsNegative() {
			t.Errorf("lot %s has negative price %s", lot.Code, lot.Price)
		}
	}
	if len(lots) != 2 {
		t.Errorf("ExtractLots() returned %d lots, want 2", len(lots))
	}
}

func TestExtractLotsTitleWhitespace(t *testing.T) {
	title := "Нежилое\n\t помещение,&nbsp;  120 кв.м"
	html := "<table>" + lotRow("7", title, "500 руб.") + "</table>"

	lots, err := newTestParser(t).ExtractLots(html)
	if err != nil {
		t.Fatalf("ExtractLots() error = %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("ExtractLots() returned %d lots, want 1", len(lots))
	}
	want := "Нежилое помещение, 120 кв.м"
	if lots[0].Title != want {
		t.Errorf("Title = %q, want %q", lots[0].Title, want)
	}
}

func TestExtractLotsLinkHandling(t *testing.T) {
	tests := []struct {
		name      string
		titleCell string
		wantURL   string
	}{
		{"relative link", `<a href="/index.php?id=9">Lot</a>`, "https://torgi.org/index.php?id=9"},
		{"absolute link", `<a href="https://other.example/l">Lot</a>`, "https://other.example/l"},
		{"no link", "Lot without link", ""},
		{"first link wins", `<a href="/a">Lot</a> <a href="/b">alt</a>`, "https://torgi.org/a"},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := "<table>" + lotRow("5", tt.titleCell, "100 руб.") + "</table>"
			lots, err := p.ExtractLots(html)
			if err != nil {
				t.Fatalf("ExtractLots() error = %v", err)
			}
			if len(lots) != 1 {
				t.Fatalf("ExtractLots() returned %d lots, want 1", len(lots))
			}
			if lots[0].URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", lots[0].URL, tt.wantURL)
			}
		})
	}
}

func TestExtractLotsRespectsLayoutConfig(t *testing.T) {
	// A narrower layout: 3 cells, price right after the title
	cfg := config.ExtractionConfig{
		CurrencyUnit: "руб",
		MinCells:     3,
		CodeColumn:   0,
		TitleColumn:  1,
		PriceColumn:  2,
	}
	p, err := NewParser(cfg, "https://torgi.org")
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}

	html := `<table><tr><td>8</td><td>Compact lot</td><td>42,00 руб.</td></tr></table>`
	lots, err := p.ExtractLots(html)
	if err != nil {
		t.Fatalf("ExtractLots() error = %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("ExtractLots() returned %d lots, want 1", len(lots))
	}
	if !lots[0].Price.Equal(decimal.RequireFromString("42")) {
		t.Errorf("Price = %s, want 42", lots[0].Price)
	}
}

func TestExtractLotsEmptyDocument(t *testing.T) {
	for _, html := range []string{"", "<html><body><p>no tables here</p></body></html>"} {
		lots, err := newTestParser(t).ExtractLots(html)
		if err != nil {
			t.Fatalf("ExtractLots(%q) error = %v", html, err)
		}
		if len(lots) != 0 {
			t.Errorf("ExtractLots(%q) returned %d lots, want 0", html, len(lots))
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"regular spaces", "a  b", "a b"},
		{"newlines and tabs", "a\n\tb", "a b"},
		{"non-breaking space", "a b", "a b"},
		{"surrounding whitespace", "  a b  ", "a b"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collapseWhitespace(tt.input); got != tt.expected {
				t.Errorf("collapseWhitespace(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHugeDigitCodeStaysString(t *testing.T) {
	// Codes are identifiers, not numbers; they must survive verbatim
	code := strings.Repeat("9", 30)
	html := "<table>" + lotRow(code, "Lot", "1 руб.") + "</table>"

	lots, err := newTestParser(t).ExtractLots(html)
	if err != nil {
		t.Fatalf("ExtractLots() error = %v", err)
	}
	if len(lots) != 1 || lots[0].Code != code {
		t.Fatalf("ExtractLots() did not preserve the code string")
	}
}
