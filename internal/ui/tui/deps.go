package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/aalvaropc/cardlist/internal/domain"
)

// ImportFunc runs an import and calls progress once per finished entry.
type ImportFunc func(ctx context.Context, progress func(domain.EntryOutcome)) (domain.ImportResult, string, error)

type Deps struct {
	// Source is shown in the header (file path, "stdin" or "inline").
	Source string
	// Total is the number of entries that will be resolved.
	Total int
	Run   ImportFunc

	// Output receives the rendered view; stdout stays free for the result.
	Output io.Writer
	Logger *slog.Logger
}
