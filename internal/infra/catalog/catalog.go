// Package catalog answers card lookups from a Scryfall bulk-data file, without
// any network access.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"golang.org/x/text/cases"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/ports"
	"github.com/aalvaropc/cardlist/internal/usecase/extract"
)

// Catalog is read-only once loaded and safe for concurrent lookups.
type Catalog struct {
	byName  map[string]domain.CardRecord
	cards   int
	skipped int
}

var _ ports.CardLookup = (*Catalog)(nil)

// Load reads a bulk-data file (a JSON array of card objects).
func Load(path string, colorsField string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{Op: "catalog.load", Kind: domain.KindIO, Path: path, Err: err}
	}
	defer f.Close()

	c, err := Read(f, colorsField)
	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) {
			oe.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Read decodes the card array from r one element at a time. Objects that are
// not usable cards are skipped; the first printing of a name wins.
func Read(r io.Reader, colorsField string) (*Catalog, error) {
	if colorsField != "" && !extract.ValidColorsField(colorsField) {
		return nil, &domain.OpError{
			Op:   "catalog.load",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: colors field %q", domain.ErrInvalidConfig, colorsField),
		}
	}

	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, decodeError(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, decodeError(fmt.Errorf("expected a JSON array of cards, got %v", tok))
	}

	c := &Catalog{byName: map[string]domain.CardRecord{}}
	for dec.More() {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return nil, decodeError(err)
		}

		rec, err := extract.Card(doc, colorsField)
		if err != nil {
			c.skipped++
			continue
		}
		c.cards++
		c.add(rec.Name, rec)

		// "Front // Back" cards are also reachable by each face name.
		if faces, err := jsonpath.Get("$.card_faces[*].name", doc); err == nil {
			if names, ok := faces.([]any); ok {
				for _, n := range names {
					if s, ok := n.(string); ok {
						c.add(s, rec)
					}
				}
			}
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, decodeError(err)
	}
	return c, nil
}

func (c *Catalog) add(name string, rec domain.CardRecord) {
	key := fold(name)
	if key == "" {
		return
	}
	if _, exists := c.byName[key]; exists {
		return
	}
	c.byName[key] = rec
}

// LookupByName returns the card whose name matches exactly, ignoring case.
func (c *Catalog) LookupByName(ctx context.Context, name string) (domain.CardRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.CardRecord{}, err
	}

	key := fold(name)
	if key == "" {
		return domain.CardRecord{}, &domain.OpError{
			Op:   "catalog.lookup",
			Kind: domain.KindMalformedLine,
			Err:  domain.ErrEmptyName,
		}
	}

	rec, ok := c.byName[key]
	if !ok {
		return domain.CardRecord{}, &domain.OpError{
			Op:   "catalog.lookup",
			Kind: domain.KindLookupNotFound,
			Err:  fmt.Errorf("%w: %q", domain.ErrCardNotFound, strings.TrimSpace(name)),
		}
	}
	return clone(rec), nil
}

// Len reports how many cards were loaded.
func (c *Catalog) Len() int { return c.cards }

// Skipped reports how many array elements were not usable cards.
func (c *Catalog) Skipped() int { return c.skipped }

func fold(name string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(name))
}

func clone(rec domain.CardRecord) domain.CardRecord {
	out := domain.CardRecord{Name: rec.Name}
	if rec.Colors != nil {
		out.Colors = append([]domain.Color{}, rec.Colors...)
	}
	if rec.ImageURIs != nil {
		uris := *rec.ImageURIs
		out.ImageURIs = &uris
	}
	return out
}

func decodeError(err error) error {
	return &domain.OpError{Op: "catalog.load", Kind: domain.KindIO, Err: err}
}
