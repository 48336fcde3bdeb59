// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via a NewGetOrdersQuery* constructor",
)

// GetOrdersQuery retrieves order read models filtered by viewpoint: a user
// sees their own orders, a collector sees orders bound to them, the open
// feed shows unclaimed pending orders, and admins see everything.
type GetOrdersQuery struct {
	userID      *kernel.UUID
	collectorID *kernel.UUID
	status      *order.Status
	openFeed    bool

	guard kernel.ConstructorGuard
}

// NewGetOrdersQueryForUser creates a query scoped to one user's orders,
// optionally narrowed to a status.
func NewGetOrdersQueryForUser(userID kernel.UUID, status *order.Status) (GetOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	return GetOrdersQuery{
		userID: &userID,
		status: status,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// NewGetOrdersQueryForCollector creates a query scoped to orders bound to
// one collector.
func NewGetOrdersQueryForCollector(collectorID kernel.UUID, status *order.Status) (GetOrdersQuery, error) {
	if err := collectorID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	return GetOrdersQuery{
		collectorID: &collectorID,
		status:      status,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// NewGetOrdersQueryOpenFeed creates a query for the claimable pending pool.
func NewGetOrdersQueryOpenFeed() GetOrdersQuery {
	pending := order.Pending
	return GetOrdersQuery{
		status:   &pending,
		openFeed: true,
		guard:    kernel.NewConstructorGuard(),
	}
}

// NewGetOrdersQueryAll creates an unscoped query for admin views,
// optionally narrowed to a status.
func NewGetOrdersQueryAll(status *order.Status) GetOrdersQuery {
	return GetOrdersQuery{
		status: status,
		guard:  kernel.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through a constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// UserID returns the user scope, or nil.
func (q GetOrdersQuery) UserID() *kernel.UUID {
	return q.userID
}

// CollectorID returns the collector scope, or nil.
func (q GetOrdersQuery) CollectorID() *kernel.UUID {
	return q.collectorID
}

// Status returns the status filter, or nil for all statuses.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// OpenFeed reports whether the query targets the claimable pending pool.
func (q GetOrdersQuery) OpenFeed() bool {
	return q.openFeed
}

// GetOrdersQueryResponse is the order read model.
type GetOrdersQueryResponse struct {
	ID                kernel.UUID
	UserID            kernel.UUID
	MaterialID        kernel.UUID
	MaterialName      string
	CollectorID       *kernel.UUID
	Address           string
	Category          string
	ContactPhone      string
	UnitPriceSnapshot float64
	Status            string
	ActualWeight      *float64
	ImpurityPercent   *float64
	Bonus             *float64
	Amount            *float64
	CreatedAt         time.Time
}
