package config

// YAMLConfig mirrors cardlist.yaml. Pointer fields distinguish "unset" from a
// zero value so defaults survive a partial file.
type YAMLConfig struct {
	Cardlist struct {
		Lookup  YAMLLookup  `yaml:"lookup"`
		Resolve YAMLResolve `yaml:"resolve"`
		Paths   YAMLPaths   `yaml:"paths"`
	} `yaml:"cardlist"`
}

type YAMLLookup struct {
	BaseURL       string   `yaml:"base_url"`
	Timeout       string   `yaml:"timeout"`
	RatePerSecond *float64 `yaml:"rate_per_second"`
	UserAgent     string   `yaml:"user_agent"`
	ColorsField   string   `yaml:"colors_field"`
}

type YAMLResolve struct {
	Policy      string `yaml:"policy"`
	Concurrency *int   `yaml:"concurrency"`
}

type YAMLPaths struct {
	ListsDir   string `yaml:"lists_dir"`
	ImportsDir string `yaml:"imports_dir"`
}
