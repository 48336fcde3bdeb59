package queries

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditLogQueryHandler retrieves audit entries from the database.
type GetAuditLogQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditLogQueryHandler creates a handler for audit log queries.
func NewGetAuditLogQueryHandler(db *gorm.DB) GetAuditLogQueryHandler {
	return GetAuditLogQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAuditLogQueryHandler) Handle(
	ctx context.Context,
	query GetAuditLogQuery,
) ([]GetAuditLogQueryResponse, error) {
	sql := `
		SELECT
			id,
			entity_type,
			entity_id,
			action,
			old_value,
			new_value,
			operator_type,
			operator_id,
			created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetAuditLogQueryResponse, 0)
	for rows.Next() {
		var row GetAuditLogQueryResponse
		var id, entityID uuid.UUID
		var operatorID *uuid.UUID

		err = rows.Scan(
			&id,
			&row.EntityType,
			&entityID,
			&row.Action,
			&row.OldValue,
			&row.NewValue,
			&row.OperatorType,
			&operatorID,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if row.EntityID, err = kernel.UUIDFromBytes(entityID[:]); err != nil {
			return nil, err
		}
		if operatorID != nil {
			oid, idErr := kernel.UUIDFromBytes(operatorID[:])
			if idErr != nil {
				return nil, idErr
			}
			row.OperatorID = &oid
		}

		entries = append(entries, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
