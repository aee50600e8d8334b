package usecase

import (
	"context"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/ports"
	"github.com/aalvaropc/cardlist/internal/usecase/parse"
)

type ValidateList struct {
	lists ports.ListSource
}

func NewValidateList(lists ports.ListSource) *ValidateList {
	return &ValidateList{lists: lists}
}

// ValidationReport is the offline view of a list: what would be looked up and
// which lines would fail before any network call.
type ValidationReport struct {
	Entries   []domain.ParsedEntry  `json:"entries"`
	Malformed []domain.EntryFailure `json:"malformed"`
}

// Execute parses a list without performing lookups. Lines whose quantity has no
// name after it are reported as malformed.
func (uc *ValidateList) Execute(ctx context.Context, text string) (ValidationReport, error) {
	rep := ValidationReport{
		Entries:   []domain.ParsedEntry{},
		Malformed: []domain.EntryFailure{},
	}

	for e := range parse.Entries(text) {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		rep.Entries = append(rep.Entries, e)
		if e.Name == "" {
			rep.Malformed = append(rep.Malformed, *newFailure(e, domain.KindMalformedLine, domain.ErrEmptyName))
		}
	}

	return rep, nil
}

// ExecuteFile reads the list through the configured source, then validates it.
func (uc *ValidateList) ExecuteFile(ctx context.Context, path string) (ValidationReport, error) {
	text, err := uc.lists.ReadList(path)
	if err != nil {
		if domain.KindOf(err) == "" {
			err = &domain.OpError{Op: "validate.read_list", Kind: domain.KindIO, Path: path, Err: err}
		}
		return ValidationReport{}, err
	}
	return uc.Execute(ctx, text)
}
