// Package batchtest wires mutation interactors to an in-memory store for
// tests.
package batchtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

// Now is the fixed start time of every Env clock.
var Now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Sink records emitted events. Err, when set, is returned from every Emit.
type Sink struct {
	mu     sync.Mutex
	events []domain.DomainEvent
	Err    error
}

func (s *Sink) Emit(_ context.Context, name string, data []domain.EventData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, domain.DomainEvent{Name: name, Data: append([]domain.EventData(nil), data...)})
	return s.Err
}

// Events returns everything emitted so far.
func (s *Sink) Events() []domain.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DomainEvent(nil), s.events...)
}

// Names returns the emitted event names in order.
func (s *Sink) Names() []string {
	var names []string
	for _, e := range s.Events() {
		names = append(names, e.Name)
	}
	return names
}

// IDs returns the ids of every emission of name.
func (s *Sink) IDs(name string) []string {
	var ids []string
	for _, e := range s.Events() {
		if e.Name == name {
			ids = append(ids, e.IDs()...)
		}
	}
	return ids
}

// Reset forgets recorded events.
func (s *Sink) Reset() {
	s.mu.Lock()
	s.events = nil
	s.mu.Unlock()
}

// SeqIDs returns a deterministic generator: pset_1, price_2, prule_3, ...
func SeqIDs() domain.IDGenerator {
	var (
		mu sync.Mutex
		n  int
	)
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}

// Env is a ready-to-use set of interactor dependencies.
type Env struct {
	Store *memory.Store
	Sink  *Sink
	Clock *clock.MockClock
	Deps  batch.Deps
}

// NewEnv creates an Env over an empty store.
func NewEnv() *Env {
	env := &Env{
		Store: memory.NewStore(),
		Sink:  &Sink{},
		Clock: clock.NewMockClock(Now),
	}
	env.Deps = batch.Deps{
		Store: env.Store,
		Sink:  env.Sink,
		Clock: env.Clock,
		IDs:   SeqIDs(),
	}
	return env
}

// Seed writes entities directly, bypassing interactors and events.
func (e *Env) Seed(sets []*domain.PriceSet, lists []*domain.PriceList) error {
	return e.Store.WithinTransaction(context.Background(), func(ctx context.Context, repo contracts.Repository) error {
		if err := repo.UpsertPriceSets(ctx, sets); err != nil {
			return err
		}
		return repo.InsertPriceLists(ctx, lists)
	})
}

// PriceSet loads one set, or nil.
func (e *Env) PriceSet(id string) *domain.PriceSet {
	sets, _ := e.Store.FindPriceSets(context.Background(), []string{id})
	if len(sets) == 0 {
		return nil
	}
	return sets[0]
}

// PriceList loads one list with its prices, or nil.
func (e *Env) PriceList(id string) *domain.PriceList {
	var found *domain.PriceList
	_ = e.Store.WithinTransaction(context.Background(), func(ctx context.Context, repo contracts.Repository) error {
		lists, err := repo.FindPriceLists(ctx, []string{id})
		if err == nil && len(lists) > 0 {
			found = lists[0]
		}
		return err
	})
	return found
}

// Price loads one price, or nil.
func (e *Env) Price(id string) *domain.Price {
	var found *domain.Price
	_ = e.Store.WithinTransaction(context.Background(), func(ctx context.Context, repo contracts.Repository) error {
		prices, err := repo.FindPrices(ctx, []string{id})
		if err == nil && len(prices) > 0 {
			found = prices[0]
		}
		return err
	})
	return found
}

// Helpers for building inputs.

func StrPtr(s string) *string { return &s }

func Int64Ptr(i int64) *int64 { return &i }

func TimePtr(t time.Time) *time.Time { return &t }

// Rules builds a raw rule map from attribute/value pairs.
func Rules(kv ...string) map[string]*string {
	out := make(map[string]*string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = StrPtr(kv[i+1])
	}
	return out
}
