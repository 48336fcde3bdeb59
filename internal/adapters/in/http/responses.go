package http

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/queries"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

// Wire models. The kernel ids render as canonical UUID strings.

type orderResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	MaterialID        string     `json:"material_id"`
	MaterialName      string     `json:"material_name"`
	CollectorID       *string    `json:"collector_id,omitempty"`
	Address           string     `json:"address"`
	Category          string     `json:"category"`
	ContactPhone      string     `json:"contact_phone,omitempty"`
	UnitPriceSnapshot float64    `json:"unit_price_snapshot"`
	Status            string     `json:"status"`
	ActualWeight      *float64   `json:"actual_weight,omitempty"`
	ImpurityPercent   *float64   `json:"impurity_percent,omitempty"`
	Bonus             *float64   `json:"bonus,omitempty"`
	Amount            *float64   `json:"amount,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type timelineStepResponse struct {
	Label string     `json:"label"`
	Time  *time.Time `json:"time"`
	Done  bool       `json:"done"`
}

type withdrawalResponse struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	CollectorID  *string   `json:"collector_id,omitempty"`
	OrderID      *string   `json:"order_id,omitempty"`
	Amount       float64   `json:"amount"`
	Channel      string    `json:"channel"`
	Status       string    `json:"status"`
	RejectReason string    `json:"reject_reason,omitempty"`
	RequestedAt  time.Time `json:"requested_at"`
}

type materialResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	CurrentPrice    float64   `json:"current_price"`
	MarketPrice     float64   `json:"market_price"`
	Trend           string    `json:"trend"`
	Unit            string    `json:"unit"`
	InventoryWeight float64   `json:"inventory_weight"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type notificationResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	Kind              string    `json:"kind"`
	RelatedEntityType string    `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string   `json:"related_entity_id,omitempty"`
	Read              bool      `json:"read"`
	CreatedAt         time.Time `json:"created_at"`
}

type categoryWeightResponse struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

type statsResponse struct {
	Revenue            float64                  `json:"revenue"`
	Weight             float64                  `json:"weight"`
	Window             string                   `json:"window"`
	PendingWithdrawals int64                    `json:"pending_withdrawals"`
	TotalAccounts      int64                    `json:"total_accounts"`
	TotalCollectors    int64                    `json:"total_collectors"`
	TotalOrders        int64                    `json:"total_orders"`
	CompletedOrders    int64                    `json:"completed_orders"`
	PendingOrders      int64                    `json:"pending_orders"`
	TotalRevenue       float64                  `json:"total_revenue"`
	TotalWeight        float64                  `json:"total_weight"`
	CategoryWeights    []categoryWeightResponse `json:"category_weights"`
}

type auditEntryResponse struct {
	ID           string    `json:"id"`
	EntityType   string    `json:"entity_type"`
	EntityID     string    `json:"entity_id"`
	Action       string    `json:"action"`
	OldValue     string    `json:"old_value,omitempty"`
	NewValue     string    `json:"new_value,omitempty"`
	OperatorType string    `json:"operator_type"`
	OperatorID   *string   `json:"operator_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type loginResponse struct {
	Token       string  `json:"token"`
	AccountID   string  `json:"account_id"`
	Name        string  `json:"name"`
	Balance     float64 `json:"balance"`
	Points      int     `json:"points"`
	CollectorID *string `json:"collector_id,omitempty"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func orderToResponse(row queries.GetOrdersQueryResponse) orderResponse {
	return orderResponse{
		ID:                row.ID.String(),
		UserID:            row.UserID.String(),
		MaterialID:        row.MaterialID.String(),
		MaterialName:      row.MaterialName,
		CollectorID:       optionalString(row.CollectorID),
		Address:           row.Address,
		Category:          row.Category,
		ContactPhone:      row.ContactPhone,
		UnitPriceSnapshot: row.UnitPriceSnapshot,
		Status:            row.Status,
		ActualWeight:      row.ActualWeight,
		ImpurityPercent:   row.ImpurityPercent,
		Bonus:             row.Bonus,
		Amount:            row.Amount,
		CreatedAt:         row.CreatedAt,
	}
}

func withdrawalToResponse(row queries.GetWithdrawalsQueryResponse) withdrawalResponse {
	return withdrawalResponse{
		ID:           row.ID.String(),
		AccountID:    row.AccountID.String(),
		CollectorID:  optionalString(row.CollectorID),
		OrderID:      optionalString(row.OrderID),
		Amount:       row.Amount,
		Channel:      row.Channel,
		Status:       row.Status,
		RejectReason: row.RejectReason,
		RequestedAt:  row.RequestedAt,
	}
}
