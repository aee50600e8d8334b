package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/cardlist/internal/domain"
)

// userMessage turns an import error into a one-line hint for the status area.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.Canceled) {
		return "Import canceled; partial result kept"
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindLookupNotFound:
			return "Card not found (fail_fast)"
		case domain.KindLookupTransport:
			return "Lookup service unreachable"
		case domain.KindLookupService:
			return "Lookup service error"
		case domain.KindMalformedLine:
			return "Line without a card name (fail_fast)"
		case domain.KindIO:
			if oe.Path != "" {
				return "Cannot read " + filepath.Base(oe.Path)
			}
			return "Cannot read list"
		case domain.KindInvalidConfig:
			if strings.TrimSpace(oe.Path) != "" {
				return "Invalid config at " + filepath.Base(oe.Path)
			}
			return "Invalid config"
		}
	}

	if strings.HasPrefix(err.Error(), "save import") {
		return "Import finished but could not be saved"
	}
	return "Unexpected error (see logs)"
}
