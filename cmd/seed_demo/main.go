package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/create_price_sets"
	"github.com/light-bringer/pricing-service/internal/pkg/config"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/services"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed-demo"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}
	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	opts, err := services.NewServiceOptions(ctx, cfg, logg, prometheus.NewRegistry())
	if err != nil {
		logg.Error(ctx, "failed to initialize services", err)
		os.Exit(1)
	}
	defer opts.Close()

	if err := seed(ctx, opts.Pricing, os.Stdout); err != nil {
		logg.Error(ctx, "failed to seed demo data", err)
		os.Exit(1)
	}

	fmt.Println("\nNow inspect the events:")
	fmt.Println("  HTTP: curl 'http://localhost:8080/api/v1/events'")
	fmt.Println("  CLI:  go run ./cmd/check_events")
}

// seed creates a price set with a regional price and a vip sale, then prints
// what a few customers would pay.
func seed(ctx context.Context, svc *services.PricingService, out io.Writer) error {
	sets, err := svc.CreatePriceSets(ctx, []create_price_sets.PriceSetInput{{
		Prices: []domain.PriceInput{
			{CurrencyCode: "usd", Amount: 2500},
			{CurrencyCode: "usd", Amount: 2200, Rules: map[string]*string{"region_id": strPtr("reg_eu")}},
			{CurrencyCode: "eur", Amount: 2300},
		},
	}})
	if err != nil {
		return fmt.Errorf("create price set: %w", err)
	}
	setID := sets[0].ID
	fmt.Fprintf(out, "Created price set: %s\n", setID)

	lists, err := svc.CreatePriceLists(ctx, []domain.PriceListInput{{
		Title:  "VIP sale",
		Type:   domain.PriceListTypeSale,
		Status: domain.PriceListStatusActive,
		Rules:  map[string]*string{"customer_group_id": strPtr("vip")},
		Prices: []domain.PriceInput{{PriceSetID: setID, CurrencyCode: "usd", Amount: 1900}},
	}})
	if err != nil {
		return fmt.Errorf("create price list: %w", err)
	}
	fmt.Fprintf(out, "Created price list: %s\n\n", lists[0].ID)

	customers := []struct {
		name string
		pctx domain.PricingContext
	}{
		{"guest", domain.PricingContext{CurrencyCode: "usd"}},
		{"eu guest", domain.PricingContext{CurrencyCode: "usd", Attributes: map[string]string{"region_id": "reg_eu"}}},
		{"vip", domain.PricingContext{CurrencyCode: "usd", Attributes: map[string]string{"customer_group_id": "vip"}}},
		{"eur guest", domain.PricingContext{CurrencyCode: "eur"}},
	}
	for _, c := range customers {
		results, err := svc.Calculate(ctx, []string{setID}, c.pctx)
		if err != nil {
			return fmt.Errorf("calculate for %s: %w", c.name, err)
		}
		r := results[0]
		if !r.HasPrice() {
			fmt.Fprintf(out, "%-10s no price\n", c.name)
			continue
		}
		fmt.Fprintf(out, "%-10s %d %s (original %d)\n", c.name, *r.CalculatedAmount, *r.CurrencyCode, *r.OriginalAmount)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
