package tui

import "github.com/aalvaropc/cardlist/internal/domain"

type entryDoneMsg struct {
	outcome domain.EntryOutcome
}

type importDoneMsg struct {
	res domain.ImportResult
	id  string
	err error
}
