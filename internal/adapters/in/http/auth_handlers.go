package http

import (
	"errors"
	"net/http"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/queries"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. The mini-app login code resolves to an
// openid; unknown openids register a fresh account on the spot.
func (s *Server) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" {
		return writeError(ctx, http.StatusBadRequest, "code is required")
	}

	cmd, err := commands.NewSignInCommand(deriveOpenID(req.Code), req.Name)
	if err != nil {
		return respondError(ctx, err)
	}

	signedIn, err := s.handlers.SignIn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	var collectorID *kernel.UUID
	profileQuery, err := queries.NewGetCollectorProfileQuery(signedIn.ID())
	if err != nil {
		return respondError(ctx, err)
	}
	profile, err := s.readers.CollectorProfile.Handle(ctx.Request().Context(), profileQuery)
	switch {
	case err == nil:
		id := profile.ID
		collectorID = &id
	case errors.Is(err, errs.ErrObjectNotFound):
		// Plain user account, no collector capability.
	default:
		return respondError(ctx, err)
	}

	token, err := s.tokens.Issue(signedIn.ID(), RoleUser, collectorID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, loginResponse{
		Token:       token,
		AccountID:   signedIn.ID().String(),
		Name:        signedIn.Name(),
		Balance:     signedIn.Balance(),
		Points:      signedIn.Points(),
		CollectorID: optionalString(collectorID),
	})
}

// AdminLogin handles POST /admin/login with the credentials configured via
// environment. The password is compared against a bcrypt hash.
func (s *Server) AdminLogin(ctx echo.Context) error {
	var req adminLoginRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.Username != s.admin.Username {
		return unauthorized(ctx, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(s.admin.PasswordHash), []byte(req.Password),
	); err != nil {
		return unauthorized(ctx, "invalid credentials")
	}

	token, err := s.tokens.Issue(adminSubject(req.Username), RoleAdmin, nil)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, adminLoginResponse{Token: token})
}
