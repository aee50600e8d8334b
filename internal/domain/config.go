package domain

import "time"

// Config represents the cardlist configuration loaded from cardlist.yaml.
type Config struct {
	Lookup  LookupConfig
	Resolve ResolveConfig
	Paths   PathsConfig
}

type LookupConfig struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	UserAgent     string
	// ColorsField selects which card field feeds OutputCard.Colors ("colors" or "color_identity").
	ColorsField string
}

type ResolveConfig struct {
	Policy      Policy
	Concurrency int
}

type PathsConfig struct {
	ListsDir   string
	ImportsDir string
}

// DefaultConfig provides sane defaults if cardlist.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Lookup: LookupConfig{
			BaseURL:       "https://api.scryfall.com",
			Timeout:       10 * time.Second,
			RatePerSecond: 10,
			UserAgent:     "cardlist/dev",
			ColorsField:   "colors",
		},
		Resolve: ResolveConfig{
			Policy:      PolicyContinue,
			Concurrency: 1,
		},
		Paths: PathsConfig{
			ListsDir:   "lists",
			ImportsDir: "imports",
		},
	}
}
