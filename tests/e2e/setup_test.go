package e2e

import (
	"testing"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/events"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
	"github.com/light-bringer/pricing-service/internal/pkg/ids"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/services"
	"github.com/light-bringer/pricing-service/tests/testutil"
)

// Services holds the pricing façade and the event listing for E2E tests.
type Services struct {
	Pricing *services.PricingService
	Events  *list_events.Query

	// Infrastructure
	Clock  clock.Clock
	Client *spanner.Client
}

// setupTest wires the pricing service over a clean Spanner database.
func setupTest(t *testing.T) (*Services, func()) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)

	clk := clock.NewRealClock()
	outboxRepo := repo.NewOutboxRepo(client)

	deps := batch.Deps{
		Store:  repo.NewStore(client, clk),
		Sink:   events.NewOutboxSink(committer.NewCommitter(client), clk),
		Clock:  clk,
		Logger: logger.Nop(),
		IDs:    ids.New,
	}

	return &Services{
		Pricing: services.NewPricingService(deps, repo.NewReadModel(client), nil),
		Events:  list_events.NewQuery(outboxRepo),
		Clock:   clk,
		Client:  client,
	}, cleanup
}
