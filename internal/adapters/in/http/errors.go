package http

import (
	"errors"
	"net/http"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/account"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/collector"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the wire shape of every error the API returns.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain and application errors onto HTTP statuses.
// Conflicts and rule violations are 400s: the clients treat them as
// expected business outcomes, not faults.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrOrderNotOwned),
		errors.Is(err, collector.ErrCollectorInactive),
		errors.Is(err, errNoCollectorProfile):
		return writeError(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, account.ErrInsufficientFunds),
		errors.Is(err, collector.ErrInsufficientBalance),
		errors.Is(err, commands.ErrOrderNotSettled):
		return writeError(ctx, http.StatusBadRequest, err.Error())
	default:
		return writeError(ctx, http.StatusInternalServerError, "internal error")
	}
}

func writeError(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, errorResponse{Code: status, Message: message})
}
