package repo

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Store runs pricing units of work inside Spanner read-write transactions.
type Store struct {
	committer *committer.Committer
	clock     clock.Clock
}

// NewStore creates a new Store.
func NewStore(client *spanner.Client, clk clock.Clock) *Store {
	return &Store{
		committer: committer.NewCommitter(client),
		clock:     clk,
	}
}

// WithinTransaction reads through the transaction and buffers every write
// into one commit plan. fn runs again with a fresh repository if Spanner
// aborts the attempt.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repo contracts.Repository) error) error {
	return s.committer.RunInTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		return fn(ctx, newTxRepository(txn, plan, s.clock))
	})
}

var _ contracts.Transactor = (*Store)(nil)
