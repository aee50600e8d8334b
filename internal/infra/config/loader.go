package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/cardlist/internal/domain"
)

// FileName is the workspace config file.
const FileName = "cardlist.yaml"

// LoadFile reads a cardlist.yaml and applies it over domain.DefaultConfig.
// On error the defaults are returned alongside it.
func LoadFile(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	return Parse(path, b)
}

// Parse decodes cardlist.yaml content.
func Parse(path string, b []byte) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, cfg, dto)
}
