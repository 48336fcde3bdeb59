package queries

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMaterialsQueryHandler retrieves the materials price list from the
// database.
type GetMaterialsQueryHandler struct {
	db *gorm.DB
}

// NewGetMaterialsQueryHandler creates a handler for price list queries.
func NewGetMaterialsQueryHandler(db *gorm.DB) GetMaterialsQueryHandler {
	return GetMaterialsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetMaterialsQueryHandler) Handle(
	ctx context.Context,
	query GetMaterialsQuery,
) ([]GetMaterialsQueryResponse, error) {
	sql := `
		SELECT
			id,
			name,
			category,
			current_price,
			market_price,
			trend,
			unit,
			inventory_weight,
			updated_at
		FROM materials
		WHERE 1=1
	`
	args := make([]any, 0, 1)

	if query.Category() != "" {
		sql += " AND category = ?"
		args = append(args, query.Category())
	}
	sql += " ORDER BY name"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := make([]GetMaterialsQueryResponse, 0)
	for rows.Next() {
		var row GetMaterialsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&row.Name,
			&row.Category,
			&row.CurrentPrice,
			&row.MarketPrice,
			&row.Trend,
			&row.Unit,
			&row.InventoryWeight,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		materials = append(materials, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return materials, nil
}
