package contracts

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// Repository is the storage collaborator of one unit of work. Every write is
// an upsert-with-replace: owned child collections are replaced wholesale in
// the same commit.
type Repository interface {
	// FindPriceSets loads sets with their default prices. Unknown ids are
	// omitted from the result.
	FindPriceSets(ctx context.Context, ids []string) ([]*domain.PriceSet, error)
	// FindPriceLists loads lists with their rules and prices.
	FindPriceLists(ctx context.Context, ids []string) ([]*domain.PriceList, error)
	// FindPrices loads prices with their rules.
	FindPrices(ctx context.Context, ids []string) ([]*domain.Price, error)

	// UpsertPriceSets writes the set rows and replaces each set's default
	// prices with set.Prices.
	UpsertPriceSets(ctx context.Context, sets []*domain.PriceSet) error
	// UpsertPrices writes price rows and replaces each price's rules.
	UpsertPrices(ctx context.Context, prices []*domain.Price) error
	// InsertPriceLists writes new lists with their rules and prices.
	InsertPriceLists(ctx context.Context, lists []*domain.PriceList) error
	// UpdatePriceLists writes the tracked fields of loaded lists; dirty rules
	// are replaced wholesale.
	UpdatePriceLists(ctx context.Context, lists []*domain.PriceList) error

	// DeletePrices removes prices and their rules.
	DeletePrices(ctx context.Context, ids []string) error
	// DeletePriceLists removes lists with their rules and prices.
	DeletePriceLists(ctx context.Context, ids []string) error
}

// Transactor runs fn inside one atomic unit of work. fn may be invoked more
// than once if the store retries an aborted transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}

// CandidateReader is the read side used by price calculation. Reads come from
// one consistent snapshot.
type CandidateReader interface {
	// FindCandidates returns default and list prices of the given sets with
	// their owning list attached. currency filters when non-empty.
	FindCandidates(ctx context.Context, priceSetIDs []string, currency string) ([]domain.Candidate, error)
	// FindPriceSets loads sets with their default prices.
	FindPriceSets(ctx context.Context, ids []string) ([]*domain.PriceSet, error)
}
