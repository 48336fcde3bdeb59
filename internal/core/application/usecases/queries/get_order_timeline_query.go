package queries

import (
	"errors"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

// GetOrderTimelineQuery retrieves the milestone history of one order,
// rebuilt from its audit entries.
type GetOrderTimelineQuery struct {
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetOrderTimelineQuery creates a timeline query for an order.
func NewGetOrderTimelineQuery(orderID kernel.UUID) (GetOrderTimelineQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, err
	}
	return GetOrderTimelineQuery{
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetOrderTimelineQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TimelineStep is one milestone in an order's history. Steps the order has
// not reached yet appear with Done=false and no timestamp, so clients render
// the full track with progress.
type TimelineStep struct {
	Label string
	Time  *time.Time
	Done  bool
}

// Timeline milestone labels.
const (
	StepBooked    = "Booked"
	StepScheduled = "Collector scheduled"
	StepCompleted = "Completed"
	StepCancelled = "Cancelled"
)

// OrderEvent is one audit action on an order, in creation order.
type OrderEvent struct {
	Action string
	At     time.Time
}

// BuildOrderTimeline maps audit actions onto the milestone track. The happy
// path is Booked -> Collector scheduled -> Completed; a cancelled order's
// track ends with a Cancelled step instead of the remaining milestones.
// Steps not reached yet are emitted undone with no timestamp.
func BuildOrderTimeline(events []OrderEvent) []TimelineStep {
	var bookedAt, scheduledAt, completedAt, cancelledAt *time.Time
	for _, event := range events {
		ts := event.At
		switch event.Action {
		case audit.ActionCreated:
			bookedAt = &ts
		case audit.ActionAssigned, audit.ActionClaimed:
			scheduledAt = &ts
		case audit.ActionCompleted:
			completedAt = &ts
		case audit.ActionCancelled:
			cancelledAt = &ts
		}
	}

	steps := []TimelineStep{
		{Label: StepBooked, Time: bookedAt, Done: bookedAt != nil},
	}

	if cancelledAt != nil {
		return append(steps, TimelineStep{Label: StepCancelled, Time: cancelledAt, Done: true})
	}

	return append(steps,
		TimelineStep{Label: StepScheduled, Time: scheduledAt, Done: scheduledAt != nil},
		TimelineStep{Label: StepCompleted, Time: completedAt, Done: completedAt != nil},
	)
}
