// Package auditrepo persists audit entries with GORM. Entries are
// append-only; there is no update path.
package auditrepo

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AuditLogDTO represents the database structure for audit entries.
type AuditLogDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityType   string    `gorm:"index:idx_audit_entity"`
	EntityID     uuid.UUID `gorm:"type:uuid;index:idx_audit_entity"`
	Action       string
	OldValue     string
	NewValue     string
	OperatorType string
	OperatorID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

func fromDomain(entry *audit.Entry) AuditLogDTO {
	var operatorID *uuid.UUID
	if id := entry.OperatorID(); id != nil {
		raw := id.Bytes()
		operatorID = &raw
	}

	return AuditLogDTO{
		ID:           entry.ID().Bytes(),
		EntityType:   entry.EntityType(),
		EntityID:     entry.EntityID().Bytes(),
		Action:       entry.Action(),
		OldValue:     entry.OldValue(),
		NewValue:     entry.NewValue(),
		OperatorType: entry.OperatorType(),
		OperatorID:   operatorID,
		CreatedAt:    entry.CreatedAt(),
	}
}

func toDomain(dto AuditLogDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}

	var operatorID *kernel.UUID
	if dto.OperatorID != nil {
		oID, operatorErr := kernel.UUIDFromBytes((*dto.OperatorID)[:])
		if operatorErr != nil {
			return nil, operatorErr
		}
		operatorID = &oID
	}

	return audit.NewEntry(
		id,
		dto.EntityType,
		entityID,
		dto.Action,
		dto.OldValue,
		dto.NewValue,
		dto.OperatorType,
		operatorID,
		dto.CreatedAt,
	)
}
