package queries

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves order read models from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern; the
// material name is joined in so list views need no second round trip.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order list queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query, newest orders first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			o.id,
			o.user_id,
			o.material_id,
			m.name,
			o.collector_id,
			o.address,
			o.category,
			o.contact_phone,
			o.unit_price_snapshot,
			o.status,
			o.actual_weight,
			o.impurity_percent,
			o.bonus,
			o.amount,
			o.created_at
		FROM orders o
		JOIN materials m ON m.id = o.material_id
		WHERE 1=1
	`
	args := make([]any, 0, 3)

	if query.UserID() != nil {
		sql += " AND o.user_id = ?"
		args = append(args, query.UserID().Bytes())
	}
	if query.CollectorID() != nil {
		sql += " AND o.collector_id = ?"
		args = append(args, query.CollectorID().Bytes())
	}
	if query.Status() != nil {
		sql += " AND o.status = ?"
		args = append(args, query.Status().String())
	}
	sql += " ORDER BY o.created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var row GetOrdersQueryResponse
		var id, userID, materialID uuid.UUID
		var collectorID *uuid.UUID

		err = rows.Scan(
			&id,
			&userID,
			&materialID,
			&row.MaterialName,
			&collectorID,
			&row.Address,
			&row.Category,
			&row.ContactPhone,
			&row.UnitPriceSnapshot,
			&row.Status,
			&row.ActualWeight,
			&row.ImpurityPercent,
			&row.Bonus,
			&row.Amount,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if row.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		if row.MaterialID, err = kernel.UUIDFromBytes(materialID[:]); err != nil {
			return nil, err
		}
		if collectorID != nil {
			cid, idErr := kernel.UUIDFromBytes(collectorID[:])
			if idErr != nil {
				return nil, idErr
			}
			row.CollectorID = &cid
		}

		orders = append(orders, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
