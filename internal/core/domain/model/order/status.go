package order

import (
	"fmt"

	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// Status represents the lifecycle state of a recycling pickup order.
// It implements a state machine with defined transitions so orders follow
// the correct business workflow.
//
// State transitions:
//
//	Pending ──> Scheduled ──> Completed
//	   │
//	   └──────> Cancelled
//
// Completed and Cancelled are terminal: no transition is accepted out of
// them. Scheduling happens exactly once; there is no reassignment of a
// scheduled order, which is what makes claiming contended.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// The zero value helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly booked pickup.
	// Pending orders form the shared pool visible to all collectors.
	Pending

	// Scheduled indicates the order is bound to exactly one collector,
	// either assigned by a dispatcher or claimed by the collector.
	Scheduled

	// Completed indicates the pickup happened and settlement was computed.
	// Terminal.
	Completed

	// Cancelled indicates the order was withdrawn before being scheduled.
	// Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Scheduled: "scheduled",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Scheduled: "scheduled",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses the wire representation of a status. It is used at
// the API boundary and when filtering list queries.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid order status", s),
	)
}

// Validate checks that the Status carries one of the four valid values.
// Values arriving from external sources (database, API) must be validated
// before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the lowercase wire name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is accepted.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateSchedule checks whether the status allows binding a collector
// without performing the transition. Only Pending orders can be scheduled;
// this is the precondition both Assign and Claim share, and the server is
// the sole arbiter of who wins when the pool is contended.
func (s Status) ValidateSchedule() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to schedule", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveCollector validates the consistency between order status and
// collector binding.
//
// Rules:
//   - Pending and Cancelled orders must not have a collector
//   - Scheduled and Completed orders must have a collector
func (s Status) ValidateCanHaveCollector(collector bool) error {
	if collector && s != Scheduled && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a collector", s.String()),
		)
	}

	if !collector && (s == Scheduled || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no collector", s.String()),
		)
	}

	return nil
}

// Schedule transitions the status to Scheduled.
//
// Valid transitions:
//   - Pending -> Scheduled
//
// Everything else is rejected, including Scheduled -> Scheduled: once a
// collector holds the order, competing claims lose.
func (s Status) Schedule() (Status, error) {
	if err := s.ValidateSchedule(); err != nil {
		return 0, err
	}
	return Scheduled, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Scheduled -> Completed
func (s Status) Complete() (Status, error) {
	if s != Scheduled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//
// Scheduled orders cannot be cancelled through this transition because the
// collector binding would be orphaned; completion or dispatcher intervention
// resolves them instead.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
