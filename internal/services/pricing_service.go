package services

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/calculate_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_price_sets"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/add_price_list_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/add_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/create_price_lists"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/create_price_sets"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/delete_price_lists"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/remove_price_list_rules"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/remove_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_price_list_rules"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/update_price_list_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/update_price_lists"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/update_price_sets"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/upsert_price_sets"
)

// PricingService is the entry point host code uses for every pricing
// operation: the batch mutations and the calculation reads.
type PricingService struct {
	createPriceSets       *create_price_sets.Interactor
	updatePriceSets       *update_price_sets.Interactor
	upsertPriceSets       *upsert_price_sets.Interactor
	addPrices             *add_prices.Interactor
	removePrices          *remove_prices.Interactor
	createPriceLists      *create_price_lists.Interactor
	updatePriceLists      *update_price_lists.Interactor
	addPriceListPrices    *add_price_list_prices.Interactor
	updatePriceListPrices *update_price_list_prices.Interactor
	deletePriceLists      *delete_price_lists.Interactor
	setPriceListRules     *set_price_list_rules.Interactor
	removePriceListRules  *remove_price_list_rules.Interactor

	calculator    list_price_sets.Calculator
	listPriceSets *list_price_sets.Query
}

// NewPricingService wires the interactors and queries. A nil calculator
// means uncached calculation straight from reader.
func NewPricingService(deps batch.Deps, reader contracts.CandidateReader, calculator list_price_sets.Calculator) *PricingService {
	if calculator == nil {
		calculator = calculate_prices.NewQuery(reader, deps.Clock, deps.Metrics)
	}
	return &PricingService{
		createPriceSets:       create_price_sets.NewInteractor(deps),
		updatePriceSets:       update_price_sets.NewInteractor(deps),
		upsertPriceSets:       upsert_price_sets.NewInteractor(deps),
		addPrices:             add_prices.NewInteractor(deps),
		removePrices:          remove_prices.NewInteractor(deps),
		createPriceLists:      create_price_lists.NewInteractor(deps),
		updatePriceLists:      update_price_lists.NewInteractor(deps),
		addPriceListPrices:    add_price_list_prices.NewInteractor(deps),
		updatePriceListPrices: update_price_list_prices.NewInteractor(deps),
		deletePriceLists:      delete_price_lists.NewInteractor(deps),
		setPriceListRules:     set_price_list_rules.NewInteractor(deps),
		removePriceListRules:  remove_price_list_rules.NewInteractor(deps),
		calculator:            calculator,
		listPriceSets:         list_price_sets.NewQuery(reader, calculator),
	}
}

// Calculate resolves the calculated and original price of each set.
func (s *PricingService) Calculate(ctx context.Context, priceSetIDs []string, pctx domain.PricingContext) ([]*domain.CalculatedPrice, error) {
	return s.calculator.Execute(ctx, &calculate_prices.Request{PriceSetIDs: priceSetIDs, Context: pctx})
}

// ListPriceSets loads sets with their default prices; with a context each
// set also carries its calculated price.
func (s *PricingService) ListPriceSets(ctx context.Context, ids []string, pctx *domain.PricingContext) ([]*list_price_sets.PriceSetView, error) {
	return s.listPriceSets.Execute(ctx, &list_price_sets.Request{IDs: ids, Context: pctx})
}

func (s *PricingService) CreatePriceSets(ctx context.Context, sets []create_price_sets.PriceSetInput) ([]*domain.PriceSet, error) {
	return s.createPriceSets.Execute(ctx, &create_price_sets.Request{PriceSets: sets})
}

func (s *PricingService) UpdatePriceSets(ctx context.Context, sets []update_price_sets.PriceSetUpdate) ([]*domain.PriceSet, error) {
	return s.updatePriceSets.Execute(ctx, &update_price_sets.Request{PriceSets: sets})
}

// UpsertPriceSets creates sets without a known id and replaces the default
// prices of the rest.
func (s *PricingService) UpsertPriceSets(ctx context.Context, sets []upsert_price_sets.PriceSetUpsert) ([]*domain.PriceSet, error) {
	return s.upsertPriceSets.Execute(ctx, &upsert_price_sets.Request{PriceSets: sets})
}

func (s *PricingService) AddPrices(ctx context.Context, sets []add_prices.SetPrices) ([]*domain.Price, error) {
	return s.addPrices.Execute(ctx, &add_prices.Request{PriceSets: sets})
}

func (s *PricingService) RemovePrices(ctx context.Context, ids []string) error {
	return s.removePrices.Execute(ctx, &remove_prices.Request{IDs: ids})
}

func (s *PricingService) CreatePriceLists(ctx context.Context, lists []domain.PriceListInput) ([]*domain.PriceList, error) {
	return s.createPriceLists.Execute(ctx, &create_price_lists.Request{PriceLists: lists})
}

func (s *PricingService) UpdatePriceLists(ctx context.Context, patches []domain.PriceListPatch) ([]*domain.PriceList, error) {
	return s.updatePriceLists.Execute(ctx, &update_price_lists.Request{PriceLists: patches})
}

func (s *PricingService) AddPriceListPrices(ctx context.Context, lists []batch.ListPrices) ([]*domain.Price, error) {
	return s.addPriceListPrices.Execute(ctx, &add_price_list_prices.Request{PriceLists: lists})
}

// UpdatePriceListPrices replaces, per list, the prices of the sets named in
// the batch.
func (s *PricingService) UpdatePriceListPrices(ctx context.Context, lists []batch.ListPrices) ([]*domain.Price, error) {
	return s.updatePriceListPrices.Execute(ctx, &update_price_list_prices.Request{PriceLists: lists})
}

func (s *PricingService) DeletePriceLists(ctx context.Context, ids []string) error {
	return s.deletePriceLists.Execute(ctx, &delete_price_lists.Request{IDs: ids})
}

// SetPriceListRules merges rules into the list; a nil or empty value drops
// that attribute.
func (s *PricingService) SetPriceListRules(ctx context.Context, priceListID string, rules map[string]*string) (*domain.PriceList, error) {
	return s.setPriceListRules.Execute(ctx, &set_price_list_rules.Request{PriceListID: priceListID, Rules: rules})
}

func (s *PricingService) RemovePriceListRules(ctx context.Context, priceListID string, attributes []string) (*domain.PriceList, error) {
	return s.removePriceListRules.Execute(ctx, &remove_price_list_rules.Request{PriceListID: priceListID, Attributes: attributes})
}
