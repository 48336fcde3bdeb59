package queries

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWithdrawalsQueryHandler retrieves withdrawal read models from the
// database, newest first.
type GetWithdrawalsQueryHandler struct {
	db *gorm.DB
}

// NewGetWithdrawalsQueryHandler creates a handler for withdrawal list queries.
func NewGetWithdrawalsQueryHandler(db *gorm.DB) GetWithdrawalsQueryHandler {
	return GetWithdrawalsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetWithdrawalsQueryHandler) Handle(
	ctx context.Context,
	query GetWithdrawalsQuery,
) ([]GetWithdrawalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			account_id,
			collector_id,
			order_id,
			amount,
			channel,
			status,
			reject_reason,
			requested_at
		FROM withdrawals
		WHERE 1=1
	`
	args := make([]any, 0, 2)

	if query.AccountID() != nil {
		sql += " AND account_id = ?"
		args = append(args, query.AccountID().Bytes())
	}
	if query.Status() != nil {
		sql += " AND status = ?"
		args = append(args, query.Status().String())
	}
	sql += " ORDER BY requested_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	withdrawals := make([]GetWithdrawalsQueryResponse, 0)
	for rows.Next() {
		var row GetWithdrawalsQueryResponse
		var id, accountID uuid.UUID
		var collectorID, orderID *uuid.UUID

		err = rows.Scan(
			&id,
			&accountID,
			&collectorID,
			&orderID,
			&row.Amount,
			&row.Channel,
			&row.Status,
			&row.RejectReason,
			&row.RequestedAt,
		)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if row.AccountID, err = kernel.UUIDFromBytes(accountID[:]); err != nil {
			return nil, err
		}
		if collectorID != nil {
			cid, idErr := kernel.UUIDFromBytes(collectorID[:])
			if idErr != nil {
				return nil, idErr
			}
			row.CollectorID = &cid
		}
		if orderID != nil {
			oid, idErr := kernel.UUIDFromBytes(orderID[:])
			if idErr != nil {
				return nil, idErr
			}
			row.OrderID = &oid
		}

		withdrawals = append(withdrawals, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return withdrawals, nil
}
