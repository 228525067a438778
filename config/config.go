package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the scraper needs to run
type Config struct {
	Source     SourceConfig     `yaml:"source"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Filters    FilterConfig     `yaml:"filters"`
	Output     OutputConfig     `yaml:"output"`
}

// SourceConfig describes where the listing page comes from
type SourceConfig struct {
	ListURL   string `yaml:"list_url"`
	BaseURL   string `yaml:"base_url"` // origin used to resolve relative lot links
	UserAgent string `yaml:"user_agent"`
}

// ExtractionConfig names the layout constants of the listing table.
// The column positions and the minimum cell count are empirical: the page has
// no stable row classes or ids, so a digit-only first cell plus the cell count
// is the only signal separating lot rows from header and spacer rows. If the
// site shifts its layout, retarget the extractor here.
type ExtractionConfig struct {
	CurrencyUnit string `yaml:"currency_unit"` // e.g. "руб", matched with and without a trailing dot
	MinCells     int    `yaml:"min_cells"`
	CodeColumn   int    `yaml:"code_column"`
	TitleColumn  int    `yaml:"title_column"`
	PriceColumn  int    `yaml:"price_column"`
}

// FilterConfig represents the price-range filter criteria. Bounds are kept as
// strings in the page's own price format ("1 200 000,00"); empty means no bound.
type FilterConfig struct {
	MinPrice string `yaml:"min_price"`
	MaxPrice string `yaml:"max_price"`
}

// OutputConfig describes where the JSON snapshot goes
type OutputConfig struct {
	Path string `yaml:"path"`
}

// LoadConfig loads configuration from a YAML file, starting from the defaults.
// A missing file is not an error: the defaults plus environment overrides are
// used as-is.
func LoadConfig(path string) (*Config, error) {
	cfg := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// GetDefaultConfig returns a default configuration targeting the torgi.org
// open-auction list
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Source.ListURL = "https://torgi.org/index.php?class=Auction&action=List&mod=Open&AuctionType=All"
	cfg.Source.BaseURL = "https://torgi.org"
	cfg.Source.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	cfg.Extraction.CurrencyUnit = "руб"
	cfg.Extraction.MinCells = 7
	cfg.Extraction.CodeColumn = 0
	cfg.Extraction.TitleColumn = 1
	cfg.Extraction.PriceColumn = 5
	cfg.Output.Path = "lots.json"
	return cfg
}

// applyEnv lets the environment (or a .env file loaded by main) override the
// file-based settings
func applyEnv(cfg *Config) {
	if v := os.Getenv("TORGI_LIST_URL"); v != "" {
		cfg.Source.ListURL = v
	}
	if v := os.Getenv("TORGI_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("TORGI_USER_AGENT"); v != "" {
		cfg.Source.UserAgent = v
	}
	if v := os.Getenv("TORGI_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
}
