package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"

	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/config"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "check-events"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}
	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	var (
		database  = flag.String("database", cfg.Spanner.Database, "Spanner database")
		eventType = flag.String("type", "", "Only show events of this type")
		status    = flag.String("status", "", "Only show events in this status")
		limit     = flag.Int("limit", 10, "Maximum number of events")
	)
	flag.Parse()

	client, err := spanner.NewClient(ctx, *database)
	if err != nil {
		logg.Error(ctx, "failed to create Spanner client", err)
		os.Exit(1)
	}
	defer client.Close()

	req := &list_events.Request{Limit: *limit}
	if *eventType != "" {
		req.EventType = eventType
	}
	if *status != "" {
		req.Status = status
	}

	rows, err := list_events.NewQuery(repo.NewOutboxRepo(client)).Execute(ctx, req)
	if err != nil {
		logg.Error(ctx, "failed to list events", err)
		os.Exit(1)
	}
	printEvents(os.Stdout, rows)
}

func printEvents(w io.Writer, rows []*m_outbox.Data) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No events found!")
		return
	}

	fmt.Fprintln(w, "Events in outbox_events table:")
	for i, row := range rows {
		fmt.Fprintf(w, "%d. %s - %s (ids: %d, status: %s, created: %s)\n",
			i+1, row.EventType, row.EventID, row.EntityCount, row.Status, row.CreatedAt.Format("2006-01-02 15:04:05"))
		if row.Payload.Valid {
			fmt.Fprintf(w, "   Payload: %s\n", row.Payload.String())
		}
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", len(rows))
}
