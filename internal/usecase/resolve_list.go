package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/ports"
	"github.com/aalvaropc/cardlist/internal/usecase/parse"
)

type ResolveList struct {
	lookup ports.CardLookup
	lists  ports.ListSource
	store  ports.ImportStore

	policy      domain.Policy
	concurrency int

	log   *slog.Logger
	now   func() time.Time
	newID func() string

	progressMu sync.Mutex
	progress   func(domain.EntryOutcome)
}

type ResolveOption func(*ResolveList)

// WithPolicy selects what happens when an entry cannot be resolved.
func WithPolicy(p domain.Policy) ResolveOption {
	return func(uc *ResolveList) {
		if p != "" {
			uc.policy = p
		}
	}
}

// WithConcurrency sets how many lookups may be in flight. Values below 2 resolve sequentially.
func WithConcurrency(n int) ResolveOption {
	return func(uc *ResolveList) { uc.concurrency = n }
}

// WithProgress registers a callback invoked once per finished entry, in completion order.
func WithProgress(fn func(domain.EntryOutcome)) ResolveOption {
	return func(uc *ResolveList) { uc.progress = fn }
}

func WithLogger(l *slog.Logger) ResolveOption {
	return func(uc *ResolveList) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) ResolveOption {
	return func(uc *ResolveList) { uc.now = now }
}

// WithIDGenerator is useful for tests.
func WithIDGenerator(gen func() string) ResolveOption {
	return func(uc *ResolveList) { uc.newID = gen }
}

// NewResolveList wires the resolver. lists and store may be nil.
func NewResolveList(lookup ports.CardLookup, lists ports.ListSource, store ports.ImportStore, opts ...ResolveOption) *ResolveList {
	uc := &ResolveList{
		lookup:      lookup,
		lists:       lists,
		store:       store,
		policy:      domain.PolicyContinue,
		concurrency: 1,
		log:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ExecuteFile reads the list at path and resolves it. A read failure is fatal:
// nothing is parsed and no lookup is issued.
func (uc *ResolveList) ExecuteFile(ctx context.Context, path string) (domain.ImportResult, string, error) {
	if uc.lists == nil {
		return domain.ImportResult{}, "", &domain.OpError{
			Op:   "resolve.read_list",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  errors.New("no list source configured"),
		}
	}

	text, err := uc.lists.ReadList(path)
	if err != nil {
		if domain.KindOf(err) == "" {
			err = &domain.OpError{Op: "resolve.read_list", Kind: domain.KindIO, Path: path, Err: err}
		}
		return domain.ImportResult{}, "", err
	}

	return uc.Execute(ctx, path, text)
}

// Execute parses text and resolves every entry. The returned result keeps input
// order. On cancellation the partial result is returned together with the
// context error; under fail_fast the first failure aborts the import.
func (uc *ResolveList) Execute(ctx context.Context, source string, text string) (domain.ImportResult, string, error) {
	entries := parse.All(text)

	res := domain.ImportResult{
		ID:        uc.newID(),
		Source:    source,
		Policy:    uc.policy,
		StartedAt: uc.now(),
		Entries:   len(entries),
		Cards:     make([]domain.OutputCard, 0, len(entries)),
		Failures:  []domain.EntryFailure{},
	}
	log := uc.log.With("import_id", res.ID)
	log.Info("resolve.start", "source", source, "entries", len(entries), "policy", uc.policy, "concurrency", uc.concurrency)

	var outcomes []*domain.EntryOutcome
	var err error
	if uc.concurrency > 1 {
		outcomes, err = uc.resolveParallel(ctx, log, entries)
	} else {
		outcomes, err = uc.resolveSequential(ctx, log, entries)
	}

	for _, o := range outcomes {
		if o == nil {
			continue
		}
		if o.Card != nil {
			res.Cards = append(res.Cards, *o.Card)
		} else if o.Failure != nil {
			res.Failures = append(res.Failures, *o.Failure)
		}
	}
	res.EndedAt = uc.now()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			res.Canceled = true
			log.Warn("resolve.canceled", "resolved", len(res.Cards), "failed", len(res.Failures))
			return res, "", err
		}

		// Fail-fast: progress is discarded, only the failure that aborted the import is kept.
		res.Cards = []domain.OutputCard{}
		res.Failures = failureOf(err, res.Failures)
		log.Error("resolve.aborted", "err", err)
		return res, "", err
	}

	log.Info("resolve.done", "resolved", len(res.Cards), "failed", len(res.Failures), "duration", res.EndedAt.Sub(res.StartedAt))

	if uc.store == nil {
		return res, "", nil
	}

	id, err := uc.store.SaveImport(res)
	if err != nil {
		return res, "", fmt.Errorf("save import: %w", err)
	}
	return res, id, nil
}

// ResolveEntry looks up a single entry and merges it into an output card.
func (uc *ResolveList) ResolveEntry(ctx context.Context, e domain.ParsedEntry) domain.EntryOutcome {
	o, _ := uc.resolveEntry(ctx, e)
	return o
}

func (uc *ResolveList) resolveEntry(ctx context.Context, e domain.ParsedEntry) (domain.EntryOutcome, error) {
	out := domain.EntryOutcome{Entry: e}

	if strings.TrimSpace(e.Name) == "" {
		out.Failure = newFailure(e, domain.KindMalformedLine, domain.ErrEmptyName)
		return out, newEntryError(*out.Failure, domain.ErrEmptyName)
	}

	rec, err := uc.lookup.LookupByName(ctx, e.Name)
	if err != nil {
		out.Failure = newFailure(e, domain.ClassifyLookupError(err), err)
		return out, newEntryError(*out.Failure, err)
	}

	card := domain.NewOutputCard(e, rec)
	out.Card = &card
	return out, nil
}

// entryError is returned for an entry that could not be resolved. It carries the
// recorded failure so a fail-fast abort can report exactly which entry stopped it.
type entryError struct {
	failure domain.EntryFailure
	err     error
}

func newEntryError(f domain.EntryFailure, cause error) *entryError {
	return &entryError{
		failure: f,
		err: &domain.OpError{
			Op:   "resolve.entry",
			Kind: f.Kind,
			Err:  fmt.Errorf("line %d %q: %w", f.Line, f.Text, cause),
		},
	}
}

func (e *entryError) Error() string { return e.err.Error() }
func (e *entryError) Unwrap() error { return e.err }

func (uc *ResolveList) resolveSequential(ctx context.Context, log *slog.Logger, entries []domain.ParsedEntry) ([]*domain.EntryOutcome, error) {
	outcomes := make([]*domain.EntryOutcome, len(entries))

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return outcomes, canceledAfter(err, outcomes)
		}

		o, err := uc.resolveEntry(ctx, e)
		o.Index = i
		if err != nil && ctx.Err() != nil {
			// The lookup was interrupted; the entry is neither resolved nor failed.
			return outcomes, canceledAfter(ctx.Err(), outcomes)
		}

		outcomes[i] = &o
		uc.report(log, o)

		if err != nil && uc.policy == domain.PolicyFailFast {
			return outcomes, err
		}
	}

	return outcomes, nil
}

func (uc *ResolveList) resolveParallel(ctx context.Context, log *slog.Logger, entries []domain.ParsedEntry) ([]*domain.EntryOutcome, error) {
	outcomes := make([]*domain.EntryOutcome, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, e := range entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			o, err := uc.resolveEntry(gctx, e)
			o.Index = i
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}

			// Each goroutine owns slot i.
			outcomes[i] = &o
			uc.report(log, o)

			if err != nil && uc.policy == domain.PolicyFailFast {
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcomes, canceledAfter(ctxErr, outcomes)
	}
	return outcomes, err
}

func (uc *ResolveList) report(log *slog.Logger, o domain.EntryOutcome) {
	if o.Failure != nil {
		log.Warn("resolve.failed", "line", o.Entry.Line, "name", o.Entry.Name, "kind", o.Failure.Kind, "err", o.Failure.Message)
	} else {
		log.Debug("resolve.entry", "line", o.Entry.Line, "name", o.Entry.Name, "quantity", o.Entry.Quantity)
	}

	if uc.progress == nil {
		return
	}
	uc.progressMu.Lock()
	defer uc.progressMu.Unlock()
	uc.progress(o)
}

func newFailure(e domain.ParsedEntry, kind domain.ErrorKind, err error) *domain.EntryFailure {
	return &domain.EntryFailure{
		Line:     e.Line,
		Text:     e.Raw,
		Quantity: e.Quantity,
		Name:     e.Name,
		Kind:     kind,
		Message:  err.Error(),
	}
}

func canceledAfter(err error, outcomes []*domain.EntryOutcome) error {
	done := 0
	for _, o := range outcomes {
		if o != nil {
			done++
		}
	}
	return fmt.Errorf("import canceled after %d of %d entries: %w", done, len(outcomes), err)
}

// failureOf returns the failure that aborted the import.
func failureOf(err error, recorded []domain.EntryFailure) []domain.EntryFailure {
	var ee *entryError
	if errors.As(err, &ee) {
		return []domain.EntryFailure{ee.failure}
	}
	if len(recorded) > 0 {
		return recorded[:1]
	}
	return []domain.EntryFailure{}
}
