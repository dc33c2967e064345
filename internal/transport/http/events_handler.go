package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

// EventsLister lists outbox events.
type EventsLister interface {
	Execute(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, error)
}

// EventsHandler handles HTTP requests for events.
type EventsHandler struct {
	events EventsLister
	logger *logger.Logger
}

// NewEventsHandler creates a new HTTP events handler.
func NewEventsHandler(events EventsLister, l *logger.Logger) *EventsHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &EventsHandler{
		events: events,
		logger: l,
	}
}

// Event represents a change event in the HTTP response.
type Event struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	EntityCount int64   `json:"entity_count"`
	Payload     any     `json:"payload"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
}

// ServeHTTP handles GET /api/v1/events requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	req := &list_events.Request{}

	if eventType := query.Get("event_type"); eventType != "" {
		req.EventType = &eventType
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		req.Limit = limit
	}

	rows, err := h.events.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error(r.Context(), "failed to list events", err)
		http.Error(w, "Failed to fetch events", http.StatusInternalServerError)
		return
	}

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		event := Event{
			EventID:     row.EventID,
			EventType:   row.EventType,
			EntityCount: row.EntityCount,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		}
		if row.Payload.Valid {
			event.Payload = row.Payload.Value
		}
		if row.ProcessedAt.Valid {
			processedAt := row.ProcessedAt.Time.Format(time.RFC3339)
			event.ProcessedAt = &processedAt
		}
		events = append(events, event)
	}

	response := ListEventsResponse{
		Events:     events,
		TotalCount: int64(len(events)),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WarnErr(r.Context(), "failed to encode events response", err)
	}
}
