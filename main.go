package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"torgi-scraper/config"
	"torgi-scraper/fetcher"
	"torgi-scraper/filter"
	"torgi-scraper/models"
	"torgi-scraper/parser"
	"torgi-scraper/storage"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// .env is optional, the environment itself always wins
	_ = godotenv.Load()

	// Parse command line arguments
	filePath := flag.String("file", "", "Path to a saved listing HTML file (skips the web fetch)")
	listURL := flag.String("url", "", "Listing page URL (overrides the configured one)")
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	minPriceArg := flag.String("min-price", "", "Minimum price, e.g. 500000 or \"1 200 000,00\" (empty = no bound)")
	maxPriceArg := flag.String("max-price", "", "Maximum price (empty = no bound)")
	outputPath := flag.String("output", "", "JSON snapshot file (overrides the configured one)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}
	if *listURL != "" {
		cfg.Source.ListURL = *listURL
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}

	// HTML source: either a local file or the live listing page
	var source fetcher.Fetcher
	if *filePath != "" {
		source = fetcher.NewFileFetcher(*filePath)
	} else {
		source = fetcher.NewCollyFetcher(cfg.Source.UserAgent)
	}

	htmlContent, err := source.Fetch(cfg.Source.ListURL)
	if err != nil {
		log.Fatalf("Failed to load listing page: %v\n", err)
	}

	p, err := parser.NewParser(cfg.Extraction, cfg.Source.BaseURL)
	if err != nil {
		log.Fatalf("Invalid extraction config: %v\n", err)
	}

	lots, err := p.ExtractLots(htmlContent)
	if err != nil {
		log.Fatalf("Failed to parse listing page: %v\n", err)
	}
	if len(lots) == 0 {
		log.Println("No lots found on the page")
	}

	// Price range: flags take precedence, then the config file; if neither
	// sets a bound, ask on the terminal, empty input meaning no bound
	minPrice := parsePriceFlag(*minPriceArg, cfg.Extraction.CurrencyUnit, "min-price")
	maxPrice := parsePriceFlag(*maxPriceArg, cfg.Extraction.CurrencyUnit, "max-price")
	if minPrice == nil && maxPrice == nil {
		minPrice = parsePriceFlag(cfg.Filters.MinPrice, cfg.Extraction.CurrencyUnit, "filters.min_price")
		maxPrice = parsePriceFlag(cfg.Filters.MaxPrice, cfg.Extraction.CurrencyUnit, "filters.max_price")
	}
	if minPrice == nil && maxPrice == nil {
		minPrice, maxPrice = promptPriceRange(cfg.Extraction.CurrencyUnit)
	}

	filtered := filter.FilterByRange(lots, minPrice, maxPrice)
	sorted := filter.SortByPriceDescending(filtered)

	fmt.Printf("Found %d lots, %d after filtering\n", len(lots), len(sorted))
	fmt.Println("---")
	printLots(sorted, cfg.Extraction.CurrencyUnit)

	writer := storage.NewJSONWriter(cfg.Output.Path)
	if err := writer.Write(sorted); err != nil {
		log.Fatalf("Failed to write snapshot: %v\n", err)
	}
	log.Printf("Snapshot saved to %s (%d lots)\n", cfg.Output.Path, len(sorted))
}

// printLots prints one line per lot: price | title | link
func printLots(lots []models.Lot, currencyUnit string) {
	for _, lot := range lots {
		link := lot.URL
		if link == "" {
			link = "-"
		}
		fmt.Printf("%s %s. | %s | %s\n", lot.Price.String(), currencyUnit, lot.Title, link)
	}
}

// parsePriceFlag parses an optional price bound given on the command line or
// in the config file. Empty means no bound; anything unparsable is fatal,
// unlike page prices, since the user explicitly asked for it.
func parsePriceFlag(raw, currencyUnit, name string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	price, err := parser.NormalizePrice(raw, currencyUnit)
	if err != nil {
		log.Fatalf("Invalid %s value %q\n", name, raw)
	}
	return &price
}

// promptPriceRange interactively asks for the min and max bounds
func promptPriceRange(currencyUnit string) (*decimal.Decimal, *decimal.Decimal) {
	fmt.Println("Enter a price range (leave empty for no bound):")
	scanner := bufio.NewScanner(os.Stdin)
	min := askPrice(scanner, "Minimum price: ", currencyUnit)
	max := askPrice(scanner, "Maximum price: ", currencyUnit)
	return min, max
}

// askPrice reads one price bound from the terminal, re-asking until the input
// is empty or parsable
func askPrice(scanner *bufio.Scanner, prompt, currencyUnit string) *decimal.Decimal {
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			return nil
		}
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			return nil
		}
		price, err := parser.NormalizePrice(raw, currencyUnit)
		if err != nil {
			fmt.Println("Could not read the number, try again.")
			continue
		}
		return &price
	}
}
