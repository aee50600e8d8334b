package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aalvaropc/cardlist/internal/domain"
)

const (
	formatJSON   = "json"
	formatResult = "result"
	formatPretty = "pretty"
)

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return &domain.OpError{
		Op:   "cli.flags",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("unsupported format %q (expected %s): %w", format, strings.Join(allowed, "|"), domain.ErrInvalidConfig),
	}
}

// printImport writes an import in the requested format. json is the bare card
// array; result is the whole ImportResult.
func printImport(w io.Writer, res domain.ImportResult, id string, format string) error {
	switch format {
	case formatJSON, "":
		cards := res.Cards
		if cards == nil {
			cards = []domain.OutputCard{}
		}
		return writeJSON(w, cards)
	case formatResult:
		return writeJSON(w, res)
	case formatPretty:
		printPrettyImport(w, res, id)
		return nil
	default:
		return checkFormat(format, formatJSON, formatResult, formatPretty)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func printPrettyImport(w io.Writer, res domain.ImportResult, id string) {
	total := res.EndedAt.Sub(res.StartedAt)
	if res.StartedAt.IsZero() || res.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Source:   %s\n", res.Source)
	fmt.Fprintf(w, "Policy:   %s\n", res.Policy)
	fmt.Fprintf(w, "Started:  %s\n", res.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", total.Round(time.Millisecond))
	fmt.Fprintf(w, "Entries:  %d (%d resolved, %d failed, %d cards)\n",
		res.Entries, len(res.Cards), len(res.Failures), res.TotalQuantity())
	if id != "" {
		fmt.Fprintf(w, "Import:   %s\n", id)
	}
	if res.Canceled {
		fmt.Fprintln(w, "Canceled: partial result")
	}
	fmt.Fprintln(w)

	if len(res.Cards) > 0 {
		rows := make([][]string, 0, len(res.Cards))
		for _, c := range res.Cards {
			rows = append(rows, []string{strconv.Itoa(c.Quantity), c.Name, formatColors(c.Colors), imageMark(c.ImageURIs)})
		}
		fmt.Fprintln(w, newTable("QTY", "NAME", "COLORS", "IMAGE").Rows(rows...).String())
	}

	if len(res.Failures) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(res.Failures))
		for _, f := range res.Failures {
			rows = append(rows, []string{strconv.Itoa(f.Line), f.Text, failStyle.Render(string(f.Kind))})
		}
		fmt.Fprintln(w, newTable("LINE", "TEXT", "KIND").Rows(rows...).String())
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func formatColors(cs []domain.Color) string {
	if cs == nil {
		return "-"
	}
	if len(cs) == 0 {
		return "colorless"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return strings.Join(parts, "")
}

func imageMark(img *domain.ImageURIs) string {
	if img == nil {
		return "-"
	}
	return "✓"
}

func countFailures(res domain.ImportResult) int {
	return len(res.Failures)
}
