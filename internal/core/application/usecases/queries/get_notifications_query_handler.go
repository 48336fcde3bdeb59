package queries

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler retrieves an account's notifications from the
// database, newest first.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for inbox queries.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			title,
			content,
			kind,
			related_entity_type,
			related_entity_id,
			read,
			created_at
		FROM notifications
		WHERE account_id = ?
	`
	args := []any{query.AccountID().Bytes()}

	if query.UnreadOnly() {
		sql += " AND read = false"
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]GetNotificationsQueryResponse, 0)
	for rows.Next() {
		var row GetNotificationsQueryResponse
		var id uuid.UUID
		var relatedEntityID *uuid.UUID

		err = rows.Scan(
			&id,
			&row.Title,
			&row.Content,
			&row.Kind,
			&row.RelatedEntityType,
			&relatedEntityID,
			&row.Read,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if relatedEntityID != nil {
			rid, idErr := kernel.UUIDFromBytes(relatedEntityID[:])
			if idErr != nil {
				return nil, idErr
			}
			row.RelatedEntityID = &rid
		}

		notifications = append(notifications, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}
