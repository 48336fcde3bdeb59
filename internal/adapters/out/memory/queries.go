package memory

import (
	"context"
	"sort"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/queries"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// The read-side handlers below mirror the SQL-backed handlers in the queries
// package, computing the same read models from the store. They let the HTTP
// layer run against the memory adapter in tests and local development.

func (s *Store) view(fn func(t *tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.tables)
}

// OrdersQueryHandler serves order list queries from the store.
type OrdersQueryHandler struct {
	store *Store
}

// NewOrdersQueryHandler creates a handler over the store.
func NewOrdersQueryHandler(store *Store) OrdersQueryHandler {
	return OrdersQueryHandler{store: store}
}

// Handle executes the query.
func (h OrdersQueryHandler) Handle(
	_ context.Context,
	query queries.GetOrdersQuery,
) ([]queries.GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := make([]queries.GetOrdersQueryResponse, 0)
	err := h.store.view(func(t *tables) error {
		for _, rec := range t.orders {
			if query.UserID() != nil && rec.UserID != query.UserID().Bytes() {
				continue
			}
			if query.CollectorID() != nil &&
				(rec.CollectorID == nil || *rec.CollectorID != query.CollectorID().Bytes()) {
				continue
			}
			if query.Status() != nil && rec.Status != query.Status().String() {
				continue
			}

			row, mapErr := orderResponseFromRecord(rec, t)
			if mapErr != nil {
				return mapErr
			}
			result = append(result, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func orderResponseFromRecord(rec orderRecord, t *tables) (queries.GetOrdersQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return queries.GetOrdersQueryResponse{}, err
	}
	userID, err := kernel.UUIDFromBytes(rec.UserID[:])
	if err != nil {
		return queries.GetOrdersQueryResponse{}, err
	}
	materialID, err := kernel.UUIDFromBytes(rec.MaterialID[:])
	if err != nil {
		return queries.GetOrdersQueryResponse{}, err
	}
	collectorID, err := optionalUUID(rec.CollectorID)
	if err != nil {
		return queries.GetOrdersQueryResponse{}, err
	}

	var materialName string
	if m, exists := t.materials[rec.MaterialID]; exists {
		materialName = m.Name
	}

	return queries.GetOrdersQueryResponse{
		ID:                id,
		UserID:            userID,
		MaterialID:        materialID,
		MaterialName:      materialName,
		CollectorID:       collectorID,
		Address:           rec.Address,
		Category:          rec.Category,
		ContactPhone:      rec.ContactPhone,
		UnitPriceSnapshot: rec.UnitPriceSnapshot,
		Status:            rec.Status,
		ActualWeight:      rec.ActualWeight,
		ImpurityPercent:   rec.ImpurityPercent,
		Bonus:             rec.Bonus,
		Amount:            rec.Amount,
		CreatedAt:         rec.CreatedAt,
	}, nil
}

// OrderTimelineQueryHandler serves timeline queries from the store.
type OrderTimelineQueryHandler struct {
	store *Store
}

// NewOrderTimelineQueryHandler creates a handler over the store.
func NewOrderTimelineQueryHandler(store *Store) OrderTimelineQueryHandler {
	return OrderTimelineQueryHandler{store: store}
}

// Handle executes the query.
func (h OrderTimelineQueryHandler) Handle(
	_ context.Context,
	query queries.GetOrderTimelineQuery,
) ([]queries.TimelineStep, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]queries.OrderEvent, 0)
	err := h.store.view(func(t *tables) error {
		key := query.OrderID().Bytes()
		for _, rec := range t.auditLog {
			if rec.EntityType != audit.EntityOrder || rec.EntityID != key {
				continue
			}
			events = append(events, queries.OrderEvent{Action: rec.Action, At: rec.CreatedAt})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})
	return queries.BuildOrderTimeline(events), nil
}

// WithdrawalsQueryHandler serves withdrawal list queries from the store.
type WithdrawalsQueryHandler struct {
	store *Store
}

// NewWithdrawalsQueryHandler creates a handler over the store.
func NewWithdrawalsQueryHandler(store *Store) WithdrawalsQueryHandler {
	return WithdrawalsQueryHandler{store: store}
}

// Handle executes the query.
func (h WithdrawalsQueryHandler) Handle(
	_ context.Context,
	query queries.GetWithdrawalsQuery,
) ([]queries.GetWithdrawalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := make([]queries.GetWithdrawalsQueryResponse, 0)
	err := h.store.view(func(t *tables) error {
		for _, rec := range t.withdrawals {
			if query.AccountID() != nil && rec.AccountID != query.AccountID().Bytes() {
				continue
			}
			if query.Status() != nil && rec.Status != query.Status().String() {
				continue
			}

			row, mapErr := withdrawalResponseFromRecord(rec)
			if mapErr != nil {
				return mapErr
			}
			result = append(result, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestedAt.After(result[j].RequestedAt)
	})
	return result, nil
}

func withdrawalResponseFromRecord(rec withdrawalRecord) (queries.GetWithdrawalsQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return queries.GetWithdrawalsQueryResponse{}, err
	}
	accountID, err := kernel.UUIDFromBytes(rec.AccountID[:])
	if err != nil {
		return queries.GetWithdrawalsQueryResponse{}, err
	}
	collectorID, err := optionalUUID(rec.CollectorID)
	if err != nil {
		return queries.GetWithdrawalsQueryResponse{}, err
	}
	orderID, err := optionalUUID(rec.OrderID)
	if err != nil {
		return queries.GetWithdrawalsQueryResponse{}, err
	}

	return queries.GetWithdrawalsQueryResponse{
		ID:           id,
		AccountID:    accountID,
		CollectorID:  collectorID,
		OrderID:      orderID,
		Amount:       rec.Amount,
		Channel:      rec.Channel,
		Status:       rec.Status,
		RejectReason: rec.RejectReason,
		RequestedAt:  rec.RequestedAt,
	}, nil
}

// MaterialsQueryHandler serves price list queries from the store.
type MaterialsQueryHandler struct {
	store *Store
}

// NewMaterialsQueryHandler creates a handler over the store.
func NewMaterialsQueryHandler(store *Store) MaterialsQueryHandler {
	return MaterialsQueryHandler{store: store}
}

// Handle executes the query.
func (h MaterialsQueryHandler) Handle(
	_ context.Context,
	query queries.GetMaterialsQuery,
) ([]queries.GetMaterialsQueryResponse, error) {
	result := make([]queries.GetMaterialsQueryResponse, 0)
	err := h.store.view(func(t *tables) error {
		for _, rec := range t.materials {
			if query.Category() != "" && rec.Category != query.Category() {
				continue
			}

			id, mapErr := kernel.UUIDFromBytes(rec.ID[:])
			if mapErr != nil {
				return mapErr
			}
			result = append(result, queries.GetMaterialsQueryResponse{
				ID:              id,
				Name:            rec.Name,
				Category:        rec.Category,
				CurrentPrice:    rec.CurrentPrice,
				MarketPrice:     rec.MarketPrice,
				Trend:           rec.Trend,
				Unit:            rec.Unit,
				InventoryWeight: rec.InventoryWeight,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// NotificationsQueryHandler serves inbox queries from the store.
type NotificationsQueryHandler struct {
	store *Store
}

// NewNotificationsQueryHandler creates a handler over the store.
func NewNotificationsQueryHandler(store *Store) NotificationsQueryHandler {
	return NotificationsQueryHandler{store: store}
}

// Handle executes the query.
func (h NotificationsQueryHandler) Handle(
	_ context.Context,
	query queries.GetNotificationsQuery,
) ([]queries.GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := make([]queries.GetNotificationsQueryResponse, 0)
	err := h.store.view(func(t *tables) error {
		for _, rec := range t.notifications {
			if rec.AccountID != query.AccountID().Bytes() {
				continue
			}
			if query.UnreadOnly() && rec.Read {
				continue
			}

			id, mapErr := kernel.UUIDFromBytes(rec.ID[:])
			if mapErr != nil {
				return mapErr
			}
			relatedEntityID, mapErr := optionalUUID(rec.RelatedEntityID)
			if mapErr != nil {
				return mapErr
			}
			result = append(result, queries.GetNotificationsQueryResponse{
				ID:                id,
				Title:             rec.Title,
				Content:           rec.Content,
				Kind:              rec.Kind,
				RelatedEntityType: rec.RelatedEntityType,
				RelatedEntityID:   relatedEntityID,
				Read:              rec.Read,
				CreatedAt:         rec.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// StatsQueryHandler computes the back-office overview from the store.
type StatsQueryHandler struct {
	store *Store
}

// NewStatsQueryHandler creates a handler over the store.
func NewStatsQueryHandler(store *Store) StatsQueryHandler {
	return StatsQueryHandler{store: store}
}

// Handle executes the query.
func (h StatsQueryHandler) Handle(
	_ context.Context,
	query queries.GetStatsQuery,
) (queries.GetStatsQueryResponse, error) {
	now := query.Now()
	if now.IsZero() {
		now = time.Now()
	}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)

	var response queries.GetStatsQueryResponse
	categories := make(map[string]float64)

	err := h.store.view(func(t *tables) error {
		var dayRevenue, dayWeight, weekRevenue, weekWeight float64
		for _, rec := range t.orders {
			response.TotalOrders++
			switch rec.Status {
			case order.Pending.String():
				response.PendingOrders++
			case order.Completed.String():
				response.CompletedOrders++
				if rec.Amount != nil {
					response.TotalRevenue += *rec.Amount
				}
				if rec.ActualWeight != nil {
					response.TotalWeight += *rec.ActualWeight
					categories[rec.Category] += *rec.ActualWeight
				}
				if !rec.CreatedAt.Before(dayStart) {
					if rec.Amount != nil {
						dayRevenue += *rec.Amount
					}
					if rec.ActualWeight != nil {
						dayWeight += *rec.ActualWeight
					}
				}
				if !rec.CreatedAt.Before(weekStart) {
					if rec.Amount != nil {
						weekRevenue += *rec.Amount
					}
					if rec.ActualWeight != nil {
						weekWeight += *rec.ActualWeight
					}
				}
			}
		}

		response.Revenue = dayRevenue
		response.Weight = dayWeight
		response.Window = queries.WindowToday
		if dayRevenue == 0 && dayWeight == 0 {
			response.Revenue = weekRevenue
			response.Weight = weekWeight
			response.Window = queries.WindowWeekly
		}

		for _, rec := range t.withdrawals {
			if rec.Status == withdrawal.Pending.String() {
				response.PendingWithdrawals++
			}
		}
		response.TotalAccounts = int64(len(t.accounts))
		response.TotalCollectors = int64(len(t.collectors))
		return nil
	})
	if err != nil {
		return queries.GetStatsQueryResponse{}, err
	}

	for category, weight := range categories {
		response.CategoryWeights = append(response.CategoryWeights, queries.CategoryWeight{
			Category: category,
			Weight:   weight,
		})
	}
	sort.Slice(response.CategoryWeights, func(i, j int) bool {
		return response.CategoryWeights[i].Category < response.CategoryWeights[j].Category
	})

	return response, nil
}

// AuditLogQueryHandler serves audit trail pages from the store.
type AuditLogQueryHandler struct {
	store *Store
}

// NewAuditLogQueryHandler creates a handler over the store.
func NewAuditLogQueryHandler(store *Store) AuditLogQueryHandler {
	return AuditLogQueryHandler{store: store}
}

// Handle executes the query.
func (h AuditLogQueryHandler) Handle(
	_ context.Context,
	query queries.GetAuditLogQuery,
) ([]queries.GetAuditLogQueryResponse, error) {
	var records []auditRecord
	err := h.store.view(func(t *tables) error {
		records = make([]auditRecord, len(t.auditLog))
		copy(records, t.auditLog)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if query.Offset() >= len(records) {
		return []queries.GetAuditLogQueryResponse{}, nil
	}
	records = records[query.Offset():]
	if len(records) > query.Limit() {
		records = records[:query.Limit()]
	}

	result := make([]queries.GetAuditLogQueryResponse, 0, len(records))
	for _, rec := range records {
		row, mapErr := auditResponseFromRecord(rec)
		if mapErr != nil {
			return nil, mapErr
		}
		result = append(result, row)
	}
	return result, nil
}

func auditResponseFromRecord(rec auditRecord) (queries.GetAuditLogQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return queries.GetAuditLogQueryResponse{}, err
	}
	entityID, err := kernel.UUIDFromBytes(rec.EntityID[:])
	if err != nil {
		return queries.GetAuditLogQueryResponse{}, err
	}
	operatorID, err := optionalUUID(rec.OperatorID)
	if err != nil {
		return queries.GetAuditLogQueryResponse{}, err
	}

	return queries.GetAuditLogQueryResponse{
		ID:           id,
		EntityType:   rec.EntityType,
		EntityID:     entityID,
		Action:       rec.Action,
		OldValue:     rec.OldValue,
		NewValue:     rec.NewValue,
		OperatorType: rec.OperatorType,
		OperatorID:   operatorID,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

// CollectorProfileQueryHandler resolves collector profiles from the store.
type CollectorProfileQueryHandler struct {
	store *Store
}

// NewCollectorProfileQueryHandler creates a handler over the store.
func NewCollectorProfileQueryHandler(store *Store) CollectorProfileQueryHandler {
	return CollectorProfileQueryHandler{store: store}
}

// Handle executes the query.
func (h CollectorProfileQueryHandler) Handle(
	_ context.Context,
	query queries.GetCollectorProfileQuery,
) (queries.GetCollectorProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return queries.GetCollectorProfileQueryResponse{}, err
	}

	var response queries.GetCollectorProfileQueryResponse
	found := false
	err := h.store.view(func(t *tables) error {
		for _, rec := range t.collectors {
			if rec.AccountID == nil || *rec.AccountID != query.AccountID().Bytes() {
				continue
			}
			id, mapErr := kernel.UUIDFromBytes(rec.ID[:])
			if mapErr != nil {
				return mapErr
			}
			response = queries.GetCollectorProfileQueryResponse{
				ID:      id,
				Name:    rec.Name,
				Phone:   rec.Phone,
				Balance: rec.Balance,
				Rating:  rec.Rating,
				Active:  rec.Active,
			}
			found = true
			return nil
		}
		return nil
	})
	if err != nil {
		return queries.GetCollectorProfileQueryResponse{}, err
	}
	if !found {
		return queries.GetCollectorProfileQueryResponse{},
			errs.NewObjectNotFoundError("collector", query.AccountID().String())
	}
	return response, nil
}

// ConfigQueryHandler serves frontend configuration blobs from the store.
type ConfigQueryHandler struct {
	store *Store
}

// NewConfigQueryHandler creates a handler over the store.
func NewConfigQueryHandler(store *Store) ConfigQueryHandler {
	return ConfigQueryHandler{store: store}
}

// Handle executes the query.
func (h ConfigQueryHandler) Handle(
	_ context.Context,
	query queries.GetConfigQuery,
) (queries.GetConfigQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return queries.GetConfigQueryResponse{}, err
	}

	var raw string
	err := h.store.view(func(t *tables) error {
		raw = t.configs[query.Namespace()]
		return nil
	})
	if err != nil {
		return queries.GetConfigQueryResponse{}, err
	}

	return queries.DecodeConfig(query.Namespace(), []byte(raw))
}
