package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/cardlist/internal/domain"
)

// Colors fields a card document may be read from.
const (
	ColorsField        = "colors"
	ColorIdentityField = "color_identity"
)

// ValidColorsField reports whether f names a supported colors field.
func ValidColorsField(f string) bool {
	return f == ColorsField || f == ColorIdentityField
}

// Parse decodes a JSON document into the generic form jsonpath expects.
func Parse(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// String returns the string at expr, or false when it is missing or not a string.
func String(doc any, expr string) (string, bool) {
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Card reads a card object (Scryfall shape) into a CardRecord.
//
// Colors and image URIs are looked up on the card first and then on its first
// face, since multi-faced cards only carry them per face. A field that is
// missing or null in both places stays nil.
func Card(doc any, colorsField string) (domain.CardRecord, error) {
	if colorsField == "" {
		colorsField = ColorsField
	}
	if !ValidColorsField(colorsField) {
		return domain.CardRecord{}, fmt.Errorf("unsupported colors field %q", colorsField)
	}

	name, ok := String(doc, "$.name")
	if !ok || strings.TrimSpace(name) == "" {
		return domain.CardRecord{}, fmt.Errorf("card object has no name")
	}

	rec := domain.CardRecord{Name: name}

	if v, ok := first(doc, "$."+colorsField, "$.card_faces[0]."+colorsField); ok {
		colors, err := toColors(v)
		if err != nil {
			return domain.CardRecord{}, fmt.Errorf("%s: %w", colorsField, err)
		}
		rec.Colors = colors
	}

	if v, ok := first(doc, "$.image_uris", "$.card_faces[0].image_uris"); ok {
		uris, err := toImageURIs(v)
		if err != nil {
			return domain.CardRecord{}, fmt.Errorf("image_uris: %w", err)
		}
		rec.ImageURIs = uris
	}

	return rec, nil
}

// first returns the first non-null value found among exprs.
func first(doc any, exprs ...string) (any, bool) {
	for _, expr := range exprs {
		v, err := jsonpath.Get(expr, doc)
		if err != nil || v == nil {
			continue
		}
		return v, true
	}
	return nil, false
}

func toColors(v any) ([]domain.Color, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", v)
	}
	out := make([]domain.Color, 0, len(arr))
	for _, c := range arr {
		s, ok := c.(string)
		if !ok {
			return nil, fmt.Errorf("expected string color, got %T", c)
		}
		out = append(out, domain.Color(s))
	}
	return out, nil
}

func toImageURIs(v any) (*domain.ImageURIs, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", v)
	}
	str := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	return &domain.ImageURIs{
		Small:      str("small"),
		Normal:     str("normal"),
		Large:      str("large"),
		PNG:        str("png"),
		ArtCrop:    str("art_crop"),
		BorderCrop: str("border_crop"),
	}, nil
}
