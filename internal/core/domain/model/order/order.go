package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNotBoundToCollector is returned when a collector tries to complete
	// an order that is held by a different collector.
	ErrNotBoundToCollector = errors.New("order is bound to a different collector")
)

// Settlement holds the figures produced when a scheduled order is completed.
// The amount is always derived from the unit price snapshot captured when the
// order was booked, never from the live material price.
type Settlement struct {
	// Weight is the actual weight measured at pickup, in kilograms.
	Weight float64

	// ImpurityPercent is the deduction applied for contaminated material (0-100).
	ImpurityPercent float64

	// Bonus is the tier bonus amount applied on top of the deducted base.
	Bonus float64

	// Amount is the final payout credited to the user.
	Amount float64
}

// Order is the aggregate root for a recycling pickup. It owns the status
// lifecycle and the collector binding, and carries the price snapshot that
// settlement is computed against.
//
// Invariants:
//   - id, userID, and materialID are valid UUIDs, immutable after creation
//   - collectorID is nil exactly while status is Pending or Cancelled
//   - settlement is nil until the order completes, present afterwards
//   - status transitions follow the Status state machine
//
// Fields are private; all mutation goes through validated methods so the
// invariants hold for every reachable instance.
type Order struct {
	id          kernel.UUID
	userID      kernel.UUID
	materialID  kernel.UUID
	collectorID *kernel.UUID

	address      string
	category     string
	contactPhone string

	// unitPriceSnapshot is the material price at booking time; completion
	// settles against it even if the live price moved since.
	unitPriceSnapshot float64

	status     Status
	settlement *Settlement
	createdAt  time.Time

	guard kernel.ConstructorGuard
}

// NewOrder creates a pending pickup order.
//
// Parameters:
//   - id, userID, materialID: valid UUIDs
//   - address: pickup address (required)
//   - category: material category label shown in listings
//   - contactPhone: optional contact number
//   - unitPriceSnapshot: material price captured now (must not be negative)
//   - createdAt: booking timestamp
//
// The created order starts in Pending status with no collector bound.
func NewOrder(
	id, userID, materialID kernel.UUID,
	address, category, contactPhone string,
	unitPriceSnapshot float64,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		category:     category,
		contactPhone: contactPhone,
		status:       Pending,
		createdAt:    createdAt,
		guard:        kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setMaterialID(materialID),
		o.setAddress(address),
		o.setUnitPriceSnapshot(unitPriceSnapshot),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rehydrates an order from persistence, validating that the
// stored state is internally consistent (status machine value, collector
// binding, settlement presence).
func RestoreOrder(
	id, userID, materialID kernel.UUID,
	collectorID *kernel.UUID,
	address, category, contactPhone string,
	unitPriceSnapshot float64,
	status Status,
	settlement *Settlement,
	createdAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveCollector(collectorID != nil); err != nil {
		return nil, err
	}
	if status == Completed && settlement == nil {
		return nil, errs.NewValueIsRequiredError("settlement")
	}
	if status != Completed && settlement != nil {
		return nil, errs.NewValueIsInvalidError("settlement")
	}

	o, err := NewOrder(id, userID, materialID, address, category, contactPhone, unitPriceSnapshot, createdAt)
	if err != nil {
		return nil, err
	}

	o.status = status
	o.collectorID = collectorID
	o.settlement = settlement
	return o, nil
}

// Validate ensures the Order came through a constructor.
// Call it when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the booking user's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// MaterialID returns the identifier of the booked material.
func (o *Order) MaterialID() kernel.UUID {
	return o.materialID
}

// Collector returns the bound collector's ID, or nil while unscheduled.
func (o *Order) Collector() *kernel.UUID {
	return o.collectorID
}

// Address returns the pickup address.
func (o *Order) Address() string {
	return o.address
}

// Category returns the material category label.
func (o *Order) Category() string {
	return o.category
}

// ContactPhone returns the contact number, possibly empty.
func (o *Order) ContactPhone() string {
	return o.contactPhone
}

// UnitPriceSnapshot returns the price captured at booking time.
func (o *Order) UnitPriceSnapshot() float64 {
	return o.unitPriceSnapshot
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Settlement returns the completion figures, or nil before completion.
func (o *Order) Settlement() *Settlement {
	return o.settlement
}

// CreatedAt returns the booking timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Schedule binds the order to a collector, transitioning Pending -> Scheduled.
// Both dispatcher assignment and collector claiming go through this method;
// the difference between the two is authorization and arbitration, which live
// in the application layer.
//
// Returns an error if the collector ID is invalid or the order already left
// Pending.
func (o *Order) Schedule(collectorID kernel.UUID) error {
	if err := collectorID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Schedule()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.collectorID = &collectorID
	return nil
}

// CompleteBy settles the order on behalf of the acting collector.
//
// Preconditions:
//   - the order is Scheduled
//   - the acting collector is the one the order is bound to
//
// The settlement figures are computed by the pricing domain service from the
// order's own price snapshot; CompleteBy only records them and performs the
// status transition.
func (o *Order) CompleteBy(collectorID kernel.UUID, s Settlement) error {
	if err := collectorID.Validate(); err != nil {
		return err
	}
	if o.collectorID == nil || !o.collectorID.IsEqual(collectorID) {
		return ErrNotBoundToCollector
	}
	if s.Weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v is not greater than 0", s.Weight))
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.settlement = &s
	return nil
}

// Cancel withdraws the order, transitioning Pending -> Cancelled.
// Scheduled, completed, and already cancelled orders are rejected.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.userID = id
	return nil
}

func (o *Order) setMaterialID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.materialID = id
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setUnitPriceSnapshot(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPriceSnapshot",
			fmt.Errorf("%v is negative", price))
	}
	o.unitPriceSnapshot = price
	return nil
}
