package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/cardlist/internal/domain"
)

func testModel(total int) (model, *bool) {
	canceled := false
	m := newModel(Deps{Source: "lists/burn.txt", Total: total}, nil, nil, func() { canceled = true })
	return m, &canceled
}

func resolved(line int, name string) entryDoneMsg {
	e := domain.ParsedEntry{Line: line, Raw: "1 " + name, Quantity: 1, Name: name}
	return entryDoneMsg{outcome: domain.EntryOutcome{Entry: e, Card: &domain.OutputCard{Quantity: 1, Name: name}}}
}

func failed(line int, name string) entryDoneMsg {
	e := domain.ParsedEntry{Line: line, Raw: "1 " + name, Quantity: 1, Name: name}
	return entryDoneMsg{outcome: domain.EntryOutcome{Entry: e, Failure: &domain.EntryFailure{Line: line, Kind: domain.KindLookupNotFound}}}
}

func TestModel_CountsOutcomes(t *testing.T) {
	m, _ := testModel(3)

	var tm tea.Model = m
	tm, _ = tm.Update(resolved(1, "Lightning Bolt"))
	tm, _ = tm.Update(failed(2, "Notacard"))
	tm, _ = tm.Update(resolved(3, "Counterspell"))

	got := tm.(model)
	if got.resolved != 2 || got.failed != 1 {
		t.Fatalf("expected 2 resolved / 1 failed, got %d / %d", got.resolved, got.failed)
	}
	if got.percent() != 1 {
		t.Fatalf("expected full progress, got %v", got.percent())
	}

	view := got.View()
	if !strings.Contains(view, "Notacard") || !strings.Contains(view, "lookup_not_found") {
		t.Fatalf("expected failure in view, got:\n%s", view)
	}
	if !strings.Contains(view, "lists/burn.txt") {
		t.Fatalf("expected source in header, got:\n%s", view)
	}
}

func TestModel_KeepsOnlyRecentLines(t *testing.T) {
	m, _ := testModel(20)

	var tm tea.Model = m
	for i := 1; i <= 10; i++ {
		tm, _ = tm.Update(resolved(i, "Island"))
	}
	if n := len(tm.(model).recent); n != recentLines {
		t.Fatalf("expected %d recent lines, got %d", recentLines, n)
	}
}

func TestModel_ImportDoneQuits(t *testing.T) {
	m, _ := testModel(1)

	tm, cmd := m.Update(importDoneMsg{res: domain.ImportResult{Entries: 1}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if !tm.(model).finished {
		t.Fatalf("expected model finished")
	}
}

func TestModel_QuitKeyCancelsImport(t *testing.T) {
	m, canceled := testModel(5)

	tm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !*canceled {
		t.Fatalf("expected cancel to be called")
	}
	if cmd != nil {
		t.Fatalf("expected model to keep waiting for the import")
	}
	if !tm.(model).canceling {
		t.Fatalf("expected canceling state")
	}
	if !strings.Contains(tm.View(), "canceling") {
		t.Fatalf("expected canceling status in view")
	}
}

func TestModel_ZeroTotalIsComplete(t *testing.T) {
	m, _ := testModel(0)
	if m.percent() != 1 {
		t.Fatalf("expected empty list to show as complete")
	}
}

type panickyModel struct{}

func (panickyModel) Init() tea.Cmd                       { return nil }
func (panickyModel) Update(tea.Msg) (tea.Model, tea.Cmd) { panic("boom") }
func (panickyModel) View() string                        { panic("boom") }

func TestSafeModel_RecoversFromPanic(t *testing.T) {
	canceled := false
	s := wrapSafe(panickyModel{}, func() { canceled = true }, nil)

	if got := s.View(); got != panicMessage {
		t.Fatalf("expected view panic to be recovered, got %q", got)
	}

	tm, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit after panic")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if !canceled {
		t.Fatalf("expected import canceled after panic")
	}
	if tm.View() != panicMessage {
		t.Fatalf("expected error view, got %q", tm.View())
	}
}

func TestSafeModel_ForwardsToInner(t *testing.T) {
	m, _ := testModel(1)
	s := wrapSafe(m, nil, nil)

	tm, _ := s.Update(resolved(1, "Ponder"))
	inner := tm.(safeModel).inner.(model)
	if inner.resolved != 1 {
		t.Fatalf("expected inner model updated, got %d", inner.resolved)
	}
}

func TestRunImport_FeedsListener(t *testing.T) {
	entries := make(chan entryDoneMsg)
	done := make(chan importDoneMsg, 1)

	deps := Deps{
		Run: func(ctx context.Context, progress func(domain.EntryOutcome)) (domain.ImportResult, string, error) {
			progress(resolved(1, "Ponder").outcome)
			progress(failed(2, "Notacard").outcome)
			return domain.ImportResult{Entries: 2}, "saved-1", nil
		},
	}

	finished := make(chan importDoneMsg, 1)
	go func() { finished <- runImport(context.Background(), deps, entries, done) }()

	listenCmd := listen(entries, done)
	if msg, ok := listenCmd().(entryDoneMsg); !ok || msg.outcome.Entry.Name != "Ponder" {
		t.Fatalf("expected first entry, got %#v", msg)
	}
	if msg, ok := listenCmd().(entryDoneMsg); !ok || msg.outcome.Failure == nil {
		t.Fatalf("expected failed entry, got %#v", msg)
	}
	last, ok := listenCmd().(importDoneMsg)
	if !ok {
		t.Fatalf("expected import done message")
	}
	if last.id != "saved-1" || last.res.Entries != 2 || last.err != nil {
		t.Fatalf("unexpected done message: %#v", last)
	}

	if got := <-finished; got.id != "saved-1" {
		t.Fatalf("unexpected runImport result: %#v", got)
	}
}

func TestRunImport_ProgressDoesNotBlockAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries := make(chan entryDoneMsg)
	done := make(chan importDoneMsg, 1)
	deps := Deps{
		Run: func(ctx context.Context, progress func(domain.EntryOutcome)) (domain.ImportResult, string, error) {
			// Nobody listens; the send must give up once ctx is done.
			progress(resolved(1, "Ponder").outcome)
			return domain.ImportResult{Canceled: true}, "", ctx.Err()
		},
	}

	got := runImport(ctx, deps, entries, done)
	if !errors.Is(got.err, context.Canceled) || !got.res.Canceled {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{context.Canceled, "Import canceled"},
		{&domain.OpError{Op: "resolve.entry", Kind: domain.KindLookupNotFound, Err: domain.ErrCardNotFound}, "Card not found"},
		{&domain.OpError{Op: "resolve.entry", Kind: domain.KindLookupTransport}, "unreachable"},
		{&domain.OpError{Op: "listfile.read", Kind: domain.KindIO, Path: "/tmp/lists/deck.txt"}, "deck.txt"},
		{&domain.OpError{Op: "config.parse", Kind: domain.KindInvalidConfig, Path: "/w/cardlist.yaml"}, "cardlist.yaml"},
		{errors.New("save import: disk full"), "could not be saved"},
		{errors.New("boom"), "Unexpected error"},
	}

	for _, c := range cases {
		got := userMessage(c.err)
		if c.want == "" {
			if got != "" {
				t.Fatalf("expected empty message, got %q", got)
			}
			continue
		}
		if !strings.Contains(got, c.want) {
			t.Fatalf("userMessage(%v): expected %q in %q", c.err, c.want, got)
		}
	}
}

func TestClampString(t *testing.T) {
	if got := clampString("Lim-Dûl the Necromancer", 7); got != "Lim-Dûl…" {
		t.Fatalf("unexpected clamp: %q", got)
	}
	if got := clampString("Ponder", 10); got != "Ponder" {
		t.Fatalf("unexpected clamp: %q", got)
	}
	if got := clampString("Ponder", 0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
