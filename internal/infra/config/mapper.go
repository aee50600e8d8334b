package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/usecase/extract"
)

const maxConcurrency = 16

// MapConfig applies the values set in y on top of base and validates the result.
func MapConfig(path string, base domain.Config, y YAMLConfig) (domain.Config, error) {
	cfg := base
	lk := y.Cardlist.Lookup

	if s := strings.TrimSpace(lk.BaseURL); s != "" {
		cfg.Lookup.BaseURL = s
	}
	if s := strings.TrimSpace(lk.Timeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return base, invalidField(path, "lookup.timeout", err.Error())
		}
		cfg.Lookup.Timeout = d
	}
	if lk.RatePerSecond != nil {
		cfg.Lookup.RatePerSecond = *lk.RatePerSecond
	}
	if s := strings.TrimSpace(lk.UserAgent); s != "" {
		cfg.Lookup.UserAgent = s
	}
	if s := strings.TrimSpace(lk.ColorsField); s != "" {
		cfg.Lookup.ColorsField = s
	}

	if s := strings.TrimSpace(y.Cardlist.Resolve.Policy); s != "" {
		p, err := domain.ParsePolicy(s)
		if err != nil {
			return base, invalidField(path, "resolve.policy", err.Error())
		}
		cfg.Resolve.Policy = p
	}
	if y.Cardlist.Resolve.Concurrency != nil {
		cfg.Resolve.Concurrency = *y.Cardlist.Resolve.Concurrency
	}

	if s := strings.TrimSpace(y.Cardlist.Paths.ListsDir); s != "" {
		cfg.Paths.ListsDir = s
	}
	if s := strings.TrimSpace(y.Cardlist.Paths.ImportsDir); s != "" {
		cfg.Paths.ImportsDir = s
	}

	if err := Validate(path, cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks a config regardless of where its values came from (file, flags).
func Validate(path string, cfg domain.Config) error {
	u, err := url.Parse(cfg.Lookup.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalidField(path, "lookup.base_url", fmt.Sprintf("expected an http(s) URL, got %q", cfg.Lookup.BaseURL))
	}
	if cfg.Lookup.Timeout <= 0 {
		return invalidField(path, "lookup.timeout", "must be positive")
	}
	if cfg.Lookup.RatePerSecond < 0 {
		return invalidField(path, "lookup.rate_per_second", "must not be negative")
	}
	if !extract.ValidColorsField(cfg.Lookup.ColorsField) {
		return invalidField(path, "lookup.colors_field", fmt.Sprintf("unsupported value %q", cfg.Lookup.ColorsField))
	}
	if cfg.Resolve.Concurrency < 1 || cfg.Resolve.Concurrency > maxConcurrency {
		return invalidField(path, "resolve.concurrency", fmt.Sprintf("must be between 1 and %d", maxConcurrency))
	}
	return nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
