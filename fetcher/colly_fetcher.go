package fetcher

import (
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	collector *colly.Collector
}

// NewCollyFetcher creates a new CollyFetcher instance
func NewCollyFetcher(userAgent string) *CollyFetcher {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
	)

	// The listing page is not always served as UTF-8
	c.DetectCharset = true
	c.SetRequestTimeout(10 * time.Second)

	c.OnError(func(r *colly.Response, err error) {
		log.Printf("Error fetching %s: %v\n", r.Request.URL, err)
	})

	return &CollyFetcher{
		collector: c,
	}
}

// Fetch implements the Fetcher interface
func (cf *CollyFetcher) Fetch(url string) (string, error) {
	var htmlContent string

	cf.collector.OnResponse(func(r *colly.Response) {
		htmlContent = string(r.Body)
	})

	if err := cf.collector.Visit(url); err != nil {
		return "", fmt.Errorf("failed to visit URL: %w", err)
	}
	cf.collector.Wait()

	if htmlContent == "" {
		return "", fmt.Errorf("empty response from %s", url)
	}

	log.Printf("Fetched listing page: %s (%d bytes)\n", url, len(htmlContent))
	return htmlContent, nil
}
