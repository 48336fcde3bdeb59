package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetStatsQueryHandler computes the back-office overview from the database.
type GetStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetStatsQueryHandler creates a handler for overview queries.
func NewGetStatsQueryHandler(db *gorm.DB) GetStatsQueryHandler {
	return GetStatsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetStatsQueryHandler) Handle(
	ctx context.Context,
	query GetStatsQuery,
) (GetStatsQueryResponse, error) {
	now := query.Now()
	if now.IsZero() {
		now = time.Now()
	}

	var response GetStatsQueryResponse

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	revenue, weight, err := h.settledTotalsSince(ctx, dayStart)
	if err != nil {
		return GetStatsQueryResponse{}, err
	}
	response.Window = WindowToday

	// A quiet day falls back to the weekly window.
	if revenue == 0 && weight == 0 {
		revenue, weight, err = h.settledTotalsSince(ctx, now.AddDate(0, 0, -7))
		if err != nil {
			return GetStatsQueryResponse{}, err
		}
		response.Window = WindowWeekly
	}
	response.Revenue = revenue
	response.Weight = weight

	response.TotalRevenue, response.TotalWeight, err = h.settledTotalsSince(ctx, time.Time{})
	if err != nil {
		return GetStatsQueryResponse{}, err
	}

	counters := []struct {
		sql  string
		dest *int64
	}{
		{"SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'", &response.PendingWithdrawals},
		{"SELECT COUNT(*) FROM accounts", &response.TotalAccounts},
		{"SELECT COUNT(*) FROM collectors", &response.TotalCollectors},
		{"SELECT COUNT(*) FROM orders", &response.TotalOrders},
		{"SELECT COUNT(*) FROM orders WHERE status = 'completed'", &response.CompletedOrders},
		{"SELECT COUNT(*) FROM orders WHERE status = 'pending'", &response.PendingOrders},
	}
	for _, counter := range counters {
		if err = h.db.WithContext(ctx).Raw(counter.sql).Scan(counter.dest).Error; err != nil {
			return GetStatsQueryResponse{}, err
		}
	}

	response.CategoryWeights, err = h.categoryWeights(ctx)
	if err != nil {
		return GetStatsQueryResponse{}, err
	}

	return response, nil
}

func (h GetStatsQueryHandler) settledTotalsSince(
	ctx context.Context,
	since time.Time,
) (revenue float64, weight float64, err error) {
	sql := `
		SELECT
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(actual_weight), 0)
		FROM orders
		WHERE status = 'completed'
	`
	args := make([]any, 0, 1)
	if !since.IsZero() {
		sql += " AND created_at >= ?"
		args = append(args, since)
	}

	row := h.db.WithContext(ctx).Raw(sql, args...).Row()
	if err = row.Scan(&revenue, &weight); err != nil {
		return 0, 0, err
	}
	return revenue, weight, nil
}

func (h GetStatsQueryHandler) categoryWeights(ctx context.Context) ([]CategoryWeight, error) {
	sql := `
		SELECT
			category,
			COALESCE(SUM(actual_weight), 0)
		FROM orders
		WHERE status = 'completed'
		GROUP BY category
		ORDER BY category
	`

	rows, err := h.db.WithContext(ctx).Raw(sql).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weights := make([]CategoryWeight, 0)
	for rows.Next() {
		var cw CategoryWeight
		if err = rows.Scan(&cw.Category, &cw.Weight); err != nil {
			return nil, err
		}
		weights = append(weights, cw)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return weights, nil
}
