// Package scryfall resolves card names against the Scryfall REST API.
package scryfall

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/infra/httpclient"
	"github.com/aalvaropc/cardlist/internal/ports"
	"github.com/aalvaropc/cardlist/internal/usecase/extract"
)

const namedPath = "cards/named"

type Client struct {
	exec        *httpclient.Executor
	baseURL     string
	colorsField string
	log         *slog.Logger
}

type Option func(*Client)

// WithExecutor replaces the executor built from the lookup config.
func WithExecutor(exec *httpclient.Executor) Option {
	return func(c *Client) { c.exec = exec }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds a client from the lookup config: timeout, rate limit and
// User-Agent all come from cfg.
func New(cfg domain.LookupConfig, opts ...Option) *Client {
	hc := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}
	if strings.TrimSpace(cfg.UserAgent) != "" {
		hc.UserAgent = cfg.UserAgent
	}

	c := &Client{
		exec: httpclient.NewExecutor(
			httpclient.WithClient(httpclient.New(hc)),
			httpclient.WithTimeout(hc.Timeout),
			httpclient.WithRateLimit(cfg.RatePerSecond),
		),
		baseURL:     cfg.BaseURL,
		colorsField: cfg.ColorsField,
		log:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.CardLookup = (*Client)(nil)

// LookupByName asks for the card whose name matches exactly (case-insensitive).
func (c *Client) LookupByName(ctx context.Context, name string) (domain.CardRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.CardRecord{}, &domain.OpError{
			Op:   "scryfall.lookup",
			Kind: domain.KindMalformedLine,
			Err:  domain.ErrEmptyName,
		}
	}

	req, err := httpclient.BuildGet(ctx, c.baseURL, namedPath, url.Values{"exact": {name}})
	if err != nil {
		return domain.CardRecord{}, lookupError(domain.KindLookupService, name, err)
	}

	resp, err := c.exec.Do(ctx, req)
	if err != nil {
		kind := domain.ClassifyLookupError(err)
		if kind != domain.KindCanceled {
			kind = domain.KindLookupTransport
		}
		c.log.Debug("scryfall.lookup", "name", name, "err", err, "duration", resp.Duration)
		return domain.CardRecord{}, lookupError(kind, name, err)
	}

	c.log.Debug("scryfall.lookup", "name", name, "status", resp.Status, "duration", resp.Duration)
	return c.decode(name, resp)
}

func (c *Client) decode(name string, resp httpclient.ResponseData) (domain.CardRecord, error) {
	if resp.Truncated {
		return domain.CardRecord{}, lookupError(domain.KindLookupService, name,
			fmt.Errorf("%w: response body too large", domain.ErrLookupService))
	}

	doc, parseErr := extract.Parse(resp.BodyBytes)
	object, _ := extract.String(doc, "$.object")
	details, _ := extract.String(doc, "$.details")

	switch {
	case resp.Status == http.StatusNotFound && parseErr == nil && object == "error":
		if details == "" {
			details = name
		}
		return domain.CardRecord{}, lookupError(domain.KindLookupNotFound, name,
			fmt.Errorf("%w: %s", domain.ErrCardNotFound, details))

	case resp.Status < 200 || resp.Status > 299:
		msg := fmt.Sprintf("status %d", resp.Status)
		if details != "" {
			msg += ": " + details
		}
		return domain.CardRecord{}, lookupError(domain.KindLookupService, name,
			fmt.Errorf("%w: %s", domain.ErrLookupService, msg))

	case parseErr != nil:
		return domain.CardRecord{}, lookupError(domain.KindLookupService, name,
			fmt.Errorf("%w: decode card: %v", domain.ErrLookupService, parseErr))

	case object == "error":
		return domain.CardRecord{}, lookupError(domain.KindLookupService, name,
			fmt.Errorf("%w: %s", domain.ErrLookupService, details))
	}

	rec, err := extract.Card(doc, c.colorsField)
	if err != nil {
		return domain.CardRecord{}, lookupError(domain.KindLookupService, name,
			fmt.Errorf("%w: %v", domain.ErrLookupService, err))
	}
	return rec, nil
}

func lookupError(kind domain.ErrorKind, name string, err error) error {
	return &domain.OpError{
		Op:   "scryfall.lookup",
		Kind: kind,
		Err:  fmt.Errorf("%q: %w", name, err),
	}
}
