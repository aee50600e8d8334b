package domain

import (
	"fmt"
	"time"
)

// Policy decides what happens when an entry cannot be resolved.
type Policy string

const (
	// PolicyContinue records the failure and keeps resolving the remaining entries.
	PolicyContinue Policy = "continue"
	// PolicyFailFast aborts the whole import on the first failure.
	PolicyFailFast Policy = "fail_fast"
)

// ParsePolicy accepts the config/flag spelling of a policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyContinue, "":
		return PolicyContinue, nil
	case PolicyFailFast, "fail-fast", "failfast":
		return PolicyFailFast, nil
	default:
		return "", fmt.Errorf("unsupported policy %q (expected continue|fail_fast): %w", s, ErrInvalidConfig)
	}
}

// EntryFailure describes one entry that could not be resolved.
type EntryFailure struct {
	Line     int       `json:"line"`
	Text     string    `json:"text"`
	Quantity int       `json:"quantity"`
	Name     string    `json:"name"`
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
}

// EntryOutcome is the per-entry result: exactly one of Card or Failure is set.
type EntryOutcome struct {
	Index   int
	Entry   ParsedEntry
	Card    *OutputCard
	Failure *EntryFailure
}

// OK reports whether the entry resolved.
func (o EntryOutcome) OK() bool { return o.Card != nil }

// ImportResult is the aggregated output of one import.
type ImportResult struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Policy Policy `json:"policy"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Entries  int            `json:"entries"`
	Cards    []OutputCard   `json:"cards"`
	Failures []EntryFailure `json:"failures"`
	Canceled bool           `json:"canceled,omitempty"`
}

// TotalQuantity sums the quantity of every resolved card.
func (r ImportResult) TotalQuantity() int {
	n := 0
	for _, c := range r.Cards {
		n += c.Quantity
	}
	return n
}
