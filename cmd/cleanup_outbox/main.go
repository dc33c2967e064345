package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/config"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

// Options for the outbox cleanup job.
type Options struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "cleanup-outbox"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}
	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	opts := Options{}
	flag.StringVar(&opts.SpannerDB, "database", cfg.Spanner.Database, "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&opts.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&opts.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	if opts.SpannerDB == "" {
		logg.Error(ctx, "-database flag is required", nil)
		os.Exit(1)
	}

	client, err := spanner.NewClient(ctx, opts.SpannerDB)
	if err != nil {
		logg.Error(ctx, "failed to create Spanner client", err)
		os.Exit(1)
	}
	defer client.Close()

	total, err := cleanup(ctx, repo.NewOutboxRepo(client), opts, time.Now().UTC(), logg)
	if err != nil {
		logg.Error(ctx, "cleanup failed", err)
		os.Exit(1)
	}
	logg.Info(logg.WithFields(ctx, map[string]any{"events": total, "dry_run": opts.DryRun}), "cleanup completed")
}

type retention struct {
	status string
	cutoff time.Time
}

// cleanup purges terminal events older than their retention, or only counts
// them on a dry run. It returns the number of events affected.
func cleanup(ctx context.Context, janitor contracts.OutboxJanitor, opts Options, now time.Time, logg *logger.Logger) (int64, error) {
	policies := []retention{
		{status: m_outbox.StatusCompleted, cutoff: now.AddDate(0, 0, -opts.CompletedRetentionDays)},
		{status: m_outbox.StatusFailed, cutoff: now.AddDate(0, 0, -opts.FailedRetentionDays)},
	}

	var total int64
	for _, p := range policies {
		pctx := logg.WithFields(ctx, map[string]any{
			"status": p.status,
			"cutoff": p.cutoff.Format(time.RFC3339),
		})

		var (
			n   int64
			err error
		)
		if opts.DryRun {
			n, err = janitor.CountProcessedBefore(ctx, p.status, p.cutoff)
		} else {
			n, err = janitor.PurgeProcessedBefore(ctx, p.status, p.cutoff)
		}
		if err != nil {
			return total, fmt.Errorf("cleanup of %s events: %w", p.status, err)
		}

		if opts.DryRun {
			logg.Info(logg.WithField(pctx, "count", n), "would delete events")
		} else {
			logg.Info(logg.WithField(pctx, "count", n), "deleted events")
		}
		total += n
	}
	return total, nil
}
