package queries

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GetOrderTimelineQueryHandler rebuilds an order's milestone track from its
// audit entries.
//
// The track is Booked -> Collector scheduled -> Completed for the happy
// path. A cancelled order's track ends with a Cancelled step instead of the
// remaining milestones. Steps not reached yet are emitted undone so clients
// can show progress against the full track.
type GetOrderTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTimelineQueryHandler creates a handler for timeline queries.
func NewGetOrderTimelineQueryHandler(db *gorm.DB) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db}
}

// Handle executes the query and returns the milestone steps in track order.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) ([]TimelineStep, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			action,
			created_at
		FROM audit_logs
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at
	`, audit.EntityOrder, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OrderEvent, 0)
	for rows.Next() {
		var event OrderEvent
		if err = rows.Scan(&event.Action, &event.At); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return BuildOrderTimeline(events), nil
}
