package events

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

// LogSink writes one info entry per event.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(l *logger.Logger) *LogSink {
	return &LogSink{logger: l}
}

func (s *LogSink) Emit(ctx context.Context, name string, data []domain.EventData) error {
	ids := make([]string, 0, len(data))
	for _, d := range data {
		ids = append(ids, d.ID)
	}
	ctx = s.logger.WithFields(ctx, map[string]any{
		"event": name,
		"ids":   ids,
	})
	s.logger.Info(ctx, "pricing event")
	return nil
}
