package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/cardlist/internal/domain"
)

// Run shows live progress while deps.Run resolves the list, and returns what
// the import returned. Quitting the view cancels the import; the partial result
// is still returned.
func Run(ctx context.Context, deps Deps) (domain.ImportResult, string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries := make(chan entryDoneMsg)
	done := make(chan importDoneMsg, 1)

	var (
		wg    sync.WaitGroup
		final importDoneMsg
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		final = runImport(ctx, deps, entries, done)
	}()

	out := deps.Output
	if out == nil {
		out = os.Stderr
	}

	var viewErr error
	m := newModel(deps, entries, done, cancel)
	p := tea.NewProgram(wrapSafe(m, cancel, deps.Logger), tea.WithOutput(out), tea.WithInputTTY())
	if _, err := p.Run(); err != nil {
		// Without a view nobody drains the entries; stop the import.
		cancel()
		viewErr = fmt.Errorf("progress view: %w", err)
	}

	wg.Wait()
	return final.res, final.id, errors.Join(final.err, viewErr)
}

func runImport(ctx context.Context, deps Deps, entries chan<- entryDoneMsg, done chan<- importDoneMsg) importDoneMsg {
	progress := func(o domain.EntryOutcome) {
		select {
		case entries <- entryDoneMsg{outcome: o}:
		case <-ctx.Done():
		}
	}

	r, id, err := deps.Run(ctx, progress)
	msg := importDoneMsg{res: r, id: id, err: err}
	done <- msg
	return msg
}

// listen waits for the next progress event or the end of the import.
func listen(entries <-chan entryDoneMsg, done <-chan importDoneMsg) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-entries:
			return e
		case d := <-done:
			return d
		}
	}
}
