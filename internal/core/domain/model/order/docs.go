// Package order contains the Order aggregate: a recycling pickup booked by a
// user, scheduled to exactly one collector by dispatch or by a contended
// claim, and settled against the price snapshot captured at booking time.
//
// The package enforces the lifecycle state machine
// (pending -> scheduled -> completed, pending -> cancelled) through the
// Status value object, and the collector-binding invariant (a collector is
// bound iff the order is scheduled or completed) through the aggregate's
// validated methods.
package order
