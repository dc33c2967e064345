package services

import (
	"context"
	"fmt"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/pricing-service/internal/app/pricing/cache"
	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/events"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/calculate_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_price_sets"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
	"github.com/light-bringer/pricing-service/internal/pkg/config"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Pricing    *PricingService
	ListEvents *list_events.Query
	Metrics    *metrics.PricingMetrics

	spannerClient *spanner.Client
	redisClient   *redis.Client
	pubsubClient  *gcppubsub.Client
	publisher     *gcppubsub.Publisher
}

// storage is what one store backend contributes.
type storage struct {
	store  contracts.Transactor
	reader contracts.CandidateReader
	outbox contracts.OutboxReader
	sink   contracts.EventSink
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logg *logger.Logger, reg prometheus.Registerer) (*ServiceOptions, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	opts := &ServiceOptions{Metrics: metrics.NewPricingMetrics(reg)}
	clk := clock.NewRealClock()

	// 1. Store backend
	var (
		st  storage
		err error
	)
	if cfg.App.UsesSpanner() {
		st, err = opts.spannerStorage(ctx, cfg, clk)
	} else {
		st = memoryStorage(cfg, clk)
	}
	if err != nil {
		opts.Close()
		return nil, err
	}

	// 2. Calculated price cache
	var (
		calculator  list_price_sets.Calculator
		invalidator contracts.EventSink
	)
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to connect price cache: %w", err)
		}
		opts.redisClient = client
		uncached := calculate_prices.NewQuery(st.reader, clk, opts.Metrics)
		calculator = cache.NewCachedCalculator(uncached, client, cfg.Redis.CacheTTL, logg, opts.Metrics)
		invalidator = cache.NewInvalidator(client)
	}

	// 3. Event sinks
	var publisher contracts.EventSink
	if cfg.PubSub.Enabled() {
		publisher, err = opts.pubsubSink(ctx, cfg.PubSub, clk)
		if err != nil {
			opts.Close()
			return nil, err
		}
	}
	sinks := eventSinks(st.sink, invalidator, events.NewLogSink(logg), publisher)

	// 4. Façade
	deps := batch.Deps{
		Store:   st.store,
		Sink:    sinks,
		Clock:   clk,
		Logger:  logg,
		Metrics: opts.Metrics,
	}
	opts.Pricing = NewPricingService(deps, st.reader, calculator)
	opts.ListEvents = list_events.NewQuery(st.outbox)

	logg.Info(ctx, fmt.Sprintf("pricing service wired with %s store", cfg.App.Store))
	return opts, nil
}

// eventSinks orders delivery: the outbox, then cache invalidation, then the
// log, and Pub/Sub last since Publish blocks on the broker ack.
func eventSinks(outbox, invalidator, log, publisher contracts.EventSink) events.Fanout {
	return events.NewFanout(outbox, invalidator, log, publisher)
}

func (o *ServiceOptions) spannerStorage(ctx context.Context, cfg *config.Config, clk clock.Clock) (storage, error) {
	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return storage{}, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	o.spannerClient = client

	st := storage{
		store:  repo.NewStore(client, clk),
		reader: repo.NewReadModel(client),
		outbox: repo.NewOutboxRepo(client),
	}
	if cfg.Outbox.Enabled {
		st.sink = events.NewOutboxSink(committer.NewCommitter(client), clk)
	}
	return st, nil
}

func memoryStorage(cfg *config.Config, clk clock.Clock) storage {
	store := memory.NewStore()
	outbox := events.NewMemoryOutbox(clk)
	st := storage{store: store, reader: store, outbox: outbox}
	if cfg.Outbox.Enabled {
		st.sink = outbox
	}
	return st
}

func (o *ServiceOptions) pubsubSink(ctx context.Context, cfg config.PubSubConfig, clk clock.Clock) (contracts.EventSink, error) {
	client, err := gcppubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}
	o.pubsubClient = client
	o.publisher = client.Publisher(fmt.Sprintf("projects/%s/topics/%s", cfg.ProjectID, cfg.Topic))
	return events.NewPubSubSink(o.publisher, clk), nil
}

// Close closes all resources.
func (o *ServiceOptions) Close() {
	if o.publisher != nil {
		o.publisher.Stop()
	}
	if o.pubsubClient != nil {
		_ = o.pubsubClient.Close()
	}
	if o.redisClient != nil {
		_ = o.redisClient.Close()
	}
	if o.spannerClient != nil {
		o.spannerClient.Close()
	}
}
