package http

import (
	"errors"
	"net/http"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/queries"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type createOrderRequest struct {
	MaterialID   string `json:"material_id"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone"`
}

type assignOrderRequest struct {
	CollectorID string `json:"collector_id"`
}

type completeOrderRequest struct {
	ActualWeight    float64 `json:"actual_weight"`
	ImpurityPercent float64 `json:"impurity_percent"`
}

// GetOrders handles GET /api/v1/orders. The view narrows by caller role:
// admins see everything, "open" is the claimable pool, "assigned" is the
// collector's bound orders, and the default is the caller's own bookings.
func (s *Server) GetOrders(ctx echo.Context) error {
	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		status = &parsed
	}

	var query queries.GetOrdersQuery
	var err error
	switch {
	case roleFromContext(ctx) == RoleAdmin:
		query = queries.NewGetOrdersQueryAll(status)
	case ctx.QueryParam("view") == "open":
		query = queries.NewGetOrdersQueryOpenFeed()
	case ctx.QueryParam("view") == "assigned":
		collectorID, idErr := collectorIDFromContext(ctx)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		query, err = queries.NewGetOrdersQueryForCollector(collectorID, status)
	default:
		accountID, idErr := accountIDFromContext(ctx)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		query, err = queries.NewGetOrdersQueryForUser(accountID, status)
	}
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.readers.Orders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]orderResponse, len(rows))
	for i, row := range rows {
		response[i] = orderToResponse(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders, booking a pickup for the caller.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	userID, err := accountIDFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	materialID, err := kernel.UUIDFromString(req.MaterialID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid material id")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, userID, materialID, req.Address, req.ContactPhone)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: orderID.String()})
}

// AssignOrder handles POST /api/v1/orders/:id/assign, the dispatcher path
// of the pending to scheduled transition.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req assignOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	collectorID, err := kernel.UUIDFromString(req.CollectorID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid collector id")
	}

	adminID, err := accountIDFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, collectorID, adminID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.AssignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return writeError(ctx, http.StatusBadRequest, "already claimed")
		}
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ClaimOrder handles PUT /api/v1/orders/:id/claim. The server is the sole
// arbiter of concurrent claims; losers get a 400 "already claimed" and are
// expected to refetch their pool.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid order id")
	}

	collectorID, err := collectorIDFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, collectorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.ClaimOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return writeError(ctx, http.StatusBadRequest, "already claimed")
		}
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete with the weighed
// result, settling the order.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req completeOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	collectorID, err := collectorIDFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, collectorID, req.ActualWeight, req.ImpurityPercent)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CompleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles DELETE /api/v1/orders/:id. Only the booking user may
// cancel, and only while the order is still pending.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid order id")
	}

	userID, err := accountIDFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, userID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderTimeline handles GET /api/v1/orders/:id/timeline.
func (s *Server) GetOrderTimeline(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderTimelineQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	steps, err := s.readers.OrderTimeline.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]timelineStepResponse, len(steps))
	for i, step := range steps {
		response[i] = timelineStepResponse{
			Label: step.Label,
			Time:  step.Time,
			Done:  step.Done,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}
