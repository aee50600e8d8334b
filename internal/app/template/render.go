package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aalvaropc/cardlist/internal/domain"
)

var (
	ErrUnclosed   = errors.New("unclosed template expression")
	ErrEmptyExpr  = errors.New("empty template expression")
	ErrMissingVar = errors.New("missing template variable")
)

// RenderString replaces {{VAR}} placeholders with vars values.
// A missing variable or a malformed placeholder is an invalid-config error.
func RenderString(input string, vars map[string]string) (string, error) {
	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", renderError(ErrUnclosed)
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", renderError(ErrEmptyExpr)
		}

		value, ok := vars[key]
		if !ok {
			return "", renderError(fmt.Errorf("%w %q", ErrMissingVar, key))
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

func renderError(err error) error {
	return &domain.OpError{Op: "template.render", Kind: domain.KindInvalidConfig, Err: err}
}
