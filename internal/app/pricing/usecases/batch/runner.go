// Package batch holds the unit-of-work runner shared by every pricing
// mutation interactor.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/ids"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
	"github.com/light-bringer/pricing-service/internal/pkg/validate"
)

// Deps are the collaborators of a mutation interactor. Only Store is
// required.
type Deps struct {
	Store   contracts.Transactor
	Sink    contracts.EventSink
	Clock   clock.Clock
	Logger  *logger.Logger
	Metrics *metrics.PricingMetrics
	IDs     domain.IDGenerator
}

// WorkFunc mutates through repo and records what changed in changes.
type WorkFunc func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error

// Runner executes one named batch operation: validate, run the work in one
// unit of work, then emit the recorded events.
type Runner struct {
	operation string
	deps      Deps
}

// NewRunner creates a Runner, filling unset optional dependencies.
func NewRunner(operation string, deps Deps) *Runner {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.IDs == nil {
		deps.IDs = ids.New
	}
	return &Runner{operation: operation, deps: deps}
}

// Now returns the time stamped on entities created by this batch.
func (r *Runner) Now() time.Time {
	return r.deps.Clock.Now()
}

// IDs returns the entity id generator.
func (r *Runner) IDs() domain.IDGenerator {
	return r.deps.IDs
}

// Run validates req against its tags, executes work atomically and emits the
// resulting events after commit. The change set is rebuilt on every attempt
// so retried transactions never emit twice.
func (r *Runner) Run(ctx context.Context, req any, work WorkFunc) error {
	ctx = r.deps.Logger.WithOperation(ctx, r.operation)

	if req != nil {
		if err := validate.Struct(req); err != nil {
			var fields validate.FieldErrors
			if errors.As(err, &fields) {
				return domain.ValidationFrom(fields)
			}
			return fmt.Errorf("%s: %w", r.operation, err)
		}
	}

	var changes *domain.ChangeSet
	err := r.deps.Store.WithinTransaction(ctx, func(ctx context.Context, repo contracts.Repository) error {
		changes = domain.NewChangeSet()
		return work(ctx, repo, changes)
	})
	r.deps.Metrics.ObserveMutation(r.operation, err)
	if err != nil {
		if _, ok := domain.KindOf(err); !ok {
			r.deps.Logger.Error(ctx, "batch mutation failed", err)
		}
		return err
	}

	r.emit(ctx, changes)
	return nil
}

// emit delivers each event once. Failures are logged and counted; the
// committed batch stands.
func (r *Runner) emit(ctx context.Context, changes *domain.ChangeSet) {
	if r.deps.Sink == nil || changes == nil {
		return
	}
	for _, event := range changes.Events() {
		if err := r.deps.Sink.Emit(ctx, event.Name, event.Data); err != nil {
			r.deps.Metrics.IncEmitFailure(event.Name)
			r.deps.Logger.WarnErr(r.deps.Logger.WithField(ctx, "event", event.Name), "failed to emit event", err)
		}
	}
}

// MissingIDs returns the requested ids absent from found, in request order.
func MissingIDs(requested []string, found map[string]struct{}) []string {
	var missing []string
	seen := make(map[string]struct{}, len(requested))
	for _, id := range requested {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Unique returns ids without duplicates, keeping first occurrences.
func Unique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// LoadPriceSets fetches the sets by id, failing with NotFound if any is
// missing.
func LoadPriceSets(ctx context.Context, repo contracts.Repository, ids []string) (map[string]*domain.PriceSet, error) {
	ids = Unique(ids)
	sets, err := repo.FindPriceSets(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load price sets: %w", err)
	}
	byID := make(map[string]*domain.PriceSet, len(sets))
	found := make(map[string]struct{}, len(sets))
	for _, ps := range sets {
		byID[ps.ID] = ps
		found[ps.ID] = struct{}{}
	}
	if missing := MissingIDs(ids, found); len(missing) > 0 {
		return nil, domain.NewNotFoundError("price_set", missing...)
	}
	return byID, nil
}

// LoadPriceLists fetches the lists by id, failing with NotFound if any is
// missing.
func LoadPriceLists(ctx context.Context, repo contracts.Repository, ids []string) (map[string]*domain.PriceList, error) {
	ids = Unique(ids)
	lists, err := repo.FindPriceLists(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load price lists: %w", err)
	}
	byID := make(map[string]*domain.PriceList, len(lists))
	found := make(map[string]struct{}, len(lists))
	for _, pl := range lists {
		byID[pl.ID] = pl
		found[pl.ID] = struct{}{}
	}
	if missing := MissingIDs(ids, found); len(missing) > 0 {
		return nil, domain.NewNotFoundError("price_list", missing...)
	}
	return byID, nil
}
