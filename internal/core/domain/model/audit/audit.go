// Package audit contains the Entry record shared across modules: every
// significant state change writes one, and order timelines are rebuilt
// from the entries of a single order.
package audit

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// Entity types recorded by entries.
const (
	EntityOrder      = "order"
	EntityWithdrawal = "withdrawal"
	EntityMaterial   = "material"
)

// Actions recorded by entries. Order timelines map the first four onto
// milestone steps.
const (
	ActionCreated   = "created"
	ActionAssigned  = "assigned"
	ActionClaimed   = "claimed"
	ActionCompleted = "completed"
	ActionCancelled = "cancelled"
	ActionApproved  = "approved"
	ActionRejected  = "rejected"
	ActionUpdated   = "updated"
)

// Operator types recorded by entries.
const (
	OperatorUser      = "user"
	OperatorCollector = "collector"
	OperatorAdmin     = "admin"
	OperatorSystem    = "system"
)

// Entry is an immutable audit record. Entries are append-only; nothing in
// the system updates or deletes one.
type Entry struct {
	id         kernel.UUID
	entityType string
	entityID   kernel.UUID
	action     string
	oldValue   string
	newValue   string

	operatorType string
	operatorID   *kernel.UUID

	createdAt time.Time
}

// NewEntry records a state change.
// operatorID is nil for system-initiated changes like scheduled expiry.
func NewEntry(
	id kernel.UUID,
	entityType string,
	entityID kernel.UUID,
	action, oldValue, newValue string,
	operatorType string,
	operatorID *kernel.UUID,
	createdAt time.Time,
) (*Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if entityType == "" {
		return nil, errs.NewValueIsRequiredError("entityType")
	}
	if err := entityID.Validate(); err != nil {
		return nil, err
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if operatorType == "" {
		return nil, errs.NewValueIsRequiredError("operatorType")
	}

	return &Entry{
		id:           id,
		entityType:   entityType,
		entityID:     entityID,
		action:       action,
		oldValue:     oldValue,
		newValue:     newValue,
		operatorType: operatorType,
		operatorID:   operatorID,
		createdAt:    createdAt,
	}, nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// EntityType returns the kind of entity the entry describes.
func (e *Entry) EntityType() string {
	return e.entityType
}

// EntityID returns the entity the entry describes.
func (e *Entry) EntityID() kernel.UUID {
	return e.entityID
}

// Action returns what happened to the entity.
func (e *Entry) Action() string {
	return e.action
}

// OldValue returns the state before the change, empty for creations.
func (e *Entry) OldValue() string {
	return e.oldValue
}

// NewValue returns the state after the change.
func (e *Entry) NewValue() string {
	return e.newValue
}

// OperatorType returns who performed the change.
func (e *Entry) OperatorType() string {
	return e.operatorType
}

// OperatorID returns the acting user or collector, nil for the system.
func (e *Entry) OperatorID() *kernel.UUID {
	return e.operatorID
}

// CreatedAt returns when the change happened.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
