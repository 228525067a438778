package fetcher

// Fetcher interface defines the contract for supplying raw listing-page HTML.
// Downstream parsing never knows whether the text came from the network or a
// local file.
type Fetcher interface {
	// Fetch returns the HTML of the listing page at the given address
	Fetch(url string) (string, error)
}
