// Package parse turns a free-form card list into (quantity, name) entries.
//
// One entry is produced per non-blank line:
//
//	4 Lightning Bolt   -> {4, "Lightning Bolt"}
//	Black Lotus        -> {1, "Black Lotus"}
//	4                  -> {4, ""}
package parse

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aalvaropc/cardlist/internal/domain"
)

const defaultQuantity = 1

// maxLineBytes bounds a single line read by Reader.
const maxLineBytes = 1024 * 1024

// Line parses a single line. ok is false for blank lines.
func Line(line string) (entry domain.ParsedEntry, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return domain.ParsedEntry{}, false
	}

	entry = domain.ParsedEntry{
		Raw:      trimmed,
		Quantity: defaultQuantity,
		Name:     trimmed,
	}

	token, rest, _ := splitFirst(trimmed)
	if qty, err := strconv.ParseUint(token, 10, 32); err == nil {
		entry.Quantity = int(qty)
		entry.Name = rest
	}
	return entry, true
}

// Entries yields one entry per non-blank line of text, in input order.
// The sequence is lazy; stopping early leaves the rest of the text unparsed.
func Entries(text string) iter.Seq[domain.ParsedEntry] {
	return func(yield func(domain.ParsedEntry) bool) {
		rest := text
		for lineNo := 1; rest != ""; lineNo++ {
			var line string
			line, rest, _ = strings.Cut(rest, "\n")

			e, ok := Line(line)
			if !ok {
				continue
			}
			e.Line = lineNo
			if !yield(e) {
				return
			}
		}
	}
}

// All collects Entries(text) into a slice.
func All(text string) []domain.ParsedEntry {
	out := []domain.ParsedEntry{}
	for e := range Entries(text) {
		out = append(out, e)
	}
	return out
}

// Reader parses entries from r. It stops at the first read error, returning
// the entries parsed so far.
func Reader(r io.Reader) ([]domain.ParsedEntry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	out := []domain.ParsedEntry{}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		e, ok := Line(sc.Text())
		if !ok {
			continue
		}
		e.Line = lineNo
		out = append(out, e)
	}
	return out, sc.Err()
}

// splitFirst splits s at its first whitespace rune. Only that rune is dropped:
// further whitespace stays in rest.
func splitFirst(s string) (token, rest string, found bool) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, "", false
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[:i], s[i+size:], true
}
