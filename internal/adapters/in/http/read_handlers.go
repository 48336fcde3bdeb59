package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetConfig handles GET /api/v1/config/:namespace, returning the typed
// blob for one frontend surface.
func (s *Server) GetConfig(ctx echo.Context) error {
	query, err := queries.NewGetConfigQuery(ctx.Param("namespace"))
	if err != nil {
		return respondError(ctx, err)
	}

	blob, err := s.readers.Config.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, blob.Value())
}

// GetConfigs handles GET /api/v1/config, returning every surface keyed by
// namespace so frontends fetch once on startup.
func (s *Server) GetConfigs(ctx echo.Context) error {
	namespaces := queries.ConfigNamespaces()
	response := make(map[string]any, len(namespaces))
	for _, namespace := range namespaces {
		query, err := queries.NewGetConfigQuery(namespace)
		if err != nil {
			return respondError(ctx, err)
		}
		blob, err := s.readers.Config.Handle(ctx.Request().Context(), query)
		if err != nil {
			return respondError(ctx, err)
		}
		response[namespace] = blob.Value()
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetMaterials handles GET /api/v1/materials, optionally narrowed to one
// category.
func (s *Server) GetMaterials(ctx echo.Context) error {
	query := queries.NewGetMaterialsQuery(ctx.QueryParam("category"))

	rows, err := s.readers.Materials.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]materialResponse, len(rows))
	for i, row := range rows {
		response[i] = materialResponse{
			ID:              row.ID.String(),
			Name:            row.Name,
			Category:        row.Category,
			CurrentPrice:    row.CurrentPrice,
			MarketPrice:     row.MarketPrice,
			Trend:           row.Trend,
			Unit:            row.Unit,
			InventoryWeight: row.InventoryWeight,
			UpdatedAt:       row.UpdatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetNotifications handles GET /api/v1/notifications for the caller's inbox.
func (s *Server) GetNotifications(ctx echo.Context) error {
	accountID, err := accountIDFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	unreadOnly := ctx.QueryParam("unread") == "true"
	query, err := queries.NewGetNotificationsQuery(accountID, unreadOnly)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.readers.Notifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]notificationResponse, len(rows))
	for i, row := range rows {
		response[i] = notificationResponse{
			ID:                row.ID.String(),
			Title:             row.Title,
			Content:           row.Content,
			Kind:              row.Kind,
			RelatedEntityType: row.RelatedEntityType,
			RelatedEntityID:   optionalString(row.RelatedEntityID),
			Read:              row.Read,
			CreatedAt:         row.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetStats handles GET /api/v1/admin/stats for the back-office dashboard.
func (s *Server) GetStats(ctx echo.Context) error {
	stats, err := s.readers.Stats.Handle(ctx.Request().Context(), queries.NewGetStatsQuery(time.Time{}))
	if err != nil {
		return respondError(ctx, err)
	}

	categories := make([]categoryWeightResponse, len(stats.CategoryWeights))
	for i, cw := range stats.CategoryWeights {
		categories[i] = categoryWeightResponse{Category: cw.Category, Weight: cw.Weight}
	}

	return ctx.JSON(http.StatusOK, statsResponse{
		Revenue:            stats.Revenue,
		Weight:             stats.Weight,
		Window:             stats.Window,
		PendingWithdrawals: stats.PendingWithdrawals,
		TotalAccounts:      stats.TotalAccounts,
		TotalCollectors:    stats.TotalCollectors,
		TotalOrders:        stats.TotalOrders,
		CompletedOrders:    stats.CompletedOrders,
		PendingOrders:      stats.PendingOrders,
		TotalRevenue:       stats.TotalRevenue,
		TotalWeight:        stats.TotalWeight,
		CategoryWeights:    categories,
	})
}

// GetAuditLogs handles GET /api/v1/admin/audit-logs with limit/offset paging.
func (s *Server) GetAuditLogs(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(ctx, http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}
	offset := 0
	if raw := ctx.QueryParam("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(ctx, http.StatusBadRequest, "invalid offset")
		}
		offset = parsed
	}

	query, err := queries.NewGetAuditLogQuery(limit, offset)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.readers.AuditLog.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]auditEntryResponse, len(rows))
	for i, row := range rows {
		response[i] = auditEntryResponse{
			ID:           row.ID.String(),
			EntityType:   row.EntityType,
			EntityID:     row.EntityID.String(),
			Action:       row.Action,
			OldValue:     row.OldValue,
			NewValue:     row.NewValue,
			OperatorType: row.OperatorType,
			OperatorID:   optionalString(row.OperatorID),
			CreatedAt:    row.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}
