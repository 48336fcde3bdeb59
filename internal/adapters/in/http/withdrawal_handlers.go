package http

import (
	"net/http"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/queries"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"

	"github.com/labstack/echo/v4"
)

type requestWithdrawalRequest struct {
	Amount      float64 `json:"amount"`
	Channel     string  `json:"channel"`
	OrderID     string  `json:"order_id"`
	AsCollector bool    `json:"as_collector"`
}

type rejectWithdrawalRequest struct {
	Reason string `json:"reason"`
}

// GetWithdrawals handles GET /api/v1/withdrawals. Admins see every request,
// other callers see their own.
func (s *Server) GetWithdrawals(ctx echo.Context) error {
	var status *withdrawal.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := withdrawal.StatusFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		status = &parsed
	}

	var query queries.GetWithdrawalsQuery
	var err error
	if roleFromContext(ctx) == RoleAdmin {
		query = queries.NewGetWithdrawalsQueryAll(status)
	} else {
		accountID, idErr := accountIDFromContext(ctx)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		query, err = queries.NewGetWithdrawalsQueryForAccount(accountID, status)
	}
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.readers.Withdrawals.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]withdrawalResponse, len(rows))
	for i, row := range rows {
		response[i] = withdrawalToResponse(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// RequestWithdrawal handles POST /api/v1/withdrawals. A collector payout
// draws on the commission balance; a user payout draws on the account
// balance and may reference one completed order.
func (s *Server) RequestWithdrawal(ctx echo.Context) error {
	var req requestWithdrawalRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	accountID, err := accountIDFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var collectorID *kernel.UUID
	if req.AsCollector {
		id, idErr := collectorIDFromContext(ctx)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		collectorID = &id
	}

	var orderID *kernel.UUID
	if req.OrderID != "" {
		id, idErr := kernel.UUIDFromString(req.OrderID)
		if idErr != nil {
			return writeError(ctx, http.StatusBadRequest, "invalid order id")
		}
		orderID = &id
	}

	withdrawalID := kernel.NewUUID()
	cmd, err := commands.NewRequestWithdrawalCommand(
		withdrawalID, accountID, collectorID, orderID, req.Amount, req.Channel,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.RequestWithdrawal.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: withdrawalID.String()})
}

// ApproveWithdrawal handles POST /api/v1/withdrawals/:id/approve.
func (s *Server) ApproveWithdrawal(ctx echo.Context) error {
	return s.reviewWithdrawal(ctx, true, "")
}

// RejectWithdrawal handles POST /api/v1/withdrawals/:id/reject. The reason
// travels back to the requester and the refund restores the debited amount.
func (s *Server) RejectWithdrawal(ctx echo.Context) error {
	var req rejectWithdrawalRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	return s.reviewWithdrawal(ctx, false, req.Reason)
}

func (s *Server) reviewWithdrawal(ctx echo.Context, approve bool, reason string) error {
	withdrawalID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid withdrawal id")
	}

	adminID, err := accountIDFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReviewWithdrawalCommand(withdrawalID, adminID, approve, reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.ReviewWithdrawal.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
