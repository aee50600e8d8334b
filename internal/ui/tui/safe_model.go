package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const panicMessage = "Unexpected error (see logs)"

// safeModel keeps a panic in the view from taking the terminal down with it.
// After a panic in Update the import is canceled and the program quits.
type safeModel struct {
	inner  tea.Model
	cancel context.CancelFunc
	log    *slog.Logger

	crashed bool
}

func wrapSafe(m tea.Model, cancel context.CancelFunc, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{inner: m, cancel: cancel, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.inner.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	if s.crashed {
		return s, nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				"where", "tui.update",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)

			if s.cancel != nil {
				s.cancel()
			}
			s.crashed = true
			tm = s
			cmd = tea.Quit
		}
	}()

	inner, c := s.inner.Update(msg)
	if sm, ok := inner.(safeModel); ok {
		return sm, c
	}
	s.inner = inner
	return s, c
}

func (s safeModel) View() (out string) {
	if s.crashed {
		return panicMessage
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				"where", "tui.view",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			out = panicMessage
		}
	}()
	return s.inner.View()
}

var _ tea.Model = (*safeModel)(nil)
