package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const recentLines = 6

type model struct {
	theme Theme

	source string
	total  int

	spin spinner.Model
	bar  progress.Model

	entries <-chan entryDoneMsg
	done    <-chan importDoneMsg
	cancel  context.CancelFunc

	resolved  int
	failed    int
	recent    []string
	canceling bool

	finished bool
	final    importDoneMsg
	toast    string
}

func newModel(deps Deps, entries <-chan entryDoneMsg, done <-chan importDoneMsg, cancel context.CancelFunc) model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return model{
		theme:   DefaultTheme(),
		source:  deps.Source,
		total:   deps.Total,
		spin:    s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		entries: entries,
		done:    done,
		cancel:  cancel,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, listen(m.entries, m.done))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w > 10 {
			m.bar.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.finished {
				return m, tea.Quit
			}
			if !m.canceling && m.cancel != nil {
				m.cancel()
			}
			m.canceling = true
			m.toast = "Canceling… waiting for in-flight lookups"
			return m, nil
		}
		return m, nil

	case entryDoneMsg:
		o := msg.outcome
		var line string
		if o.Failure != nil {
			m.failed++
			line = m.theme.Fail.Render("✗ ") + fmt.Sprintf("%d %s", o.Entry.Quantity, clampString(o.Entry.Name, 40)) +
				m.theme.Help.Render(" ("+string(o.Failure.Kind)+")")
		} else {
			m.resolved++
			line = m.theme.OK.Render("✓ ") + fmt.Sprintf("%d %s", o.Entry.Quantity, clampString(o.Entry.Name, 40))
		}
		m.recent = append(m.recent, line)
		if len(m.recent) > recentLines {
			m.recent = m.recent[len(m.recent)-recentLines:]
		}
		return m, tea.Batch(m.bar.SetPercent(m.percent()), listen(m.entries, m.done))

	case importDoneMsg:
		m.finished = true
		m.final = msg
		if msg.err != nil {
			m.toast = userMessage(msg.err)
		}
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		if bar, ok := pm.(progress.Model); ok {
			m.bar = bar
		}
		return m, cmd
	}

	return m, nil
}

func (m model) percent() float64 {
	if m.total <= 0 {
		return 1
	}
	return float64(m.resolved+m.failed) / float64(m.total)
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	header := m.theme.Title.Render("cardlist import") + "  " + m.theme.Subtitle.Render(m.source)

	status := m.spin.View() + " resolving"
	switch {
	case m.finished:
		status = m.theme.OK.Render("done")
	case m.canceling:
		status = m.spin.View() + " canceling"
	}

	counts := fmt.Sprintf("%d/%d  %s  %s",
		m.resolved+m.failed, m.total,
		m.theme.OK.Render(fmt.Sprintf("%d resolved", m.resolved)),
		m.theme.Fail.Render(fmt.Sprintf("%d failed", m.failed)),
	)

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(status + "  " + counts + "\n")
	b.WriteString(m.bar.ViewAs(m.percent()) + "\n\n")
	if len(m.recent) > 0 {
		b.WriteString(m.theme.Card.Render(strings.Join(m.recent, "\n")) + "\n")
	}
	if m.toast != "" {
		b.WriteString(m.theme.Subtitle.Render(m.toast) + "\n")
	}
	if !m.finished {
		b.WriteString(m.theme.Help.Render("q cancel"))
	}
	return wrap.Render(b.String())
}
