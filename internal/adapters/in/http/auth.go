package http

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Roles carried in the token and checked by the route guards.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Echo context keys populated by the auth middleware.
const (
	ctxAccountID   = "account_id"
	ctxRole        = "role"
	ctxCollectorID = "collector_id"
)

var errNoCollectorProfile = errors.New("account has no collector profile")

// TokenIssuer signs and verifies the bearer tokens the API hands out at
// login. Tokens carry the account id as subject, a role, and the collector
// id when the account has a collector profile.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer with the given signing secret and token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) TokenIssuer {
	return TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given account.
func (t TokenIssuer) Issue(accountID kernel.UUID, role string, collectorID *kernel.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub":  accountID.String(),
		"role": role,
		"exp":  jwt.NewNumericDate(time.Now().Add(t.ttl)),
	}
	if collectorID != nil {
		claims[ctxCollectorID] = collectorID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t TokenIssuer) parse(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// authenticate validates the bearer token and stores the caller's identity
// in the request context.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return unauthorized(ctx, "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(ctx, "malformed authorization header")
		}

		claims, err := s.tokens.parse(parts[1])
		if err != nil {
			return unauthorized(ctx, "invalid or expired token")
		}

		subject, ok := claims["sub"].(string)
		if !ok {
			return unauthorized(ctx, "invalid token subject")
		}
		accountID, err := kernel.UUIDFromString(subject)
		if err != nil {
			return unauthorized(ctx, "invalid token subject")
		}

		role, _ := claims["role"].(string)

		ctx.Set(ctxAccountID, accountID)
		ctx.Set(ctxRole, role)
		if raw, found := claims[ctxCollectorID].(string); found {
			collectorID, idErr := kernel.UUIDFromString(raw)
			if idErr != nil {
				return unauthorized(ctx, "invalid collector claim")
			}
			ctx.Set(ctxCollectorID, collectorID)
		}

		return next(ctx)
	}
}

// requireAdmin rejects callers without the admin role.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if role, _ := ctx.Get(ctxRole).(string); role != RoleAdmin {
			return ctx.JSON(http.StatusForbidden, errorResponse{
				Code:    http.StatusForbidden,
				Message: "admin role required",
			})
		}
		return next(ctx)
	}
}

func accountIDFromContext(ctx echo.Context) (kernel.UUID, error) {
	id, ok := ctx.Get(ctxAccountID).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, errors.New("no authenticated account in context")
	}
	return id, nil
}

func collectorIDFromContext(ctx echo.Context) (kernel.UUID, error) {
	id, ok := ctx.Get(ctxCollectorID).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, errNoCollectorProfile
	}
	return id, nil
}

func roleFromContext(ctx echo.Context) string {
	role, _ := ctx.Get(ctxRole).(string)
	return role
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, errorResponse{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}

// deriveOpenID turns a mini-app login code into a stable openid. Without an
// upstream identity provider the same code always resolves to the same
// account, which is what local development needs.
func deriveOpenID(code string) string {
	sum := sha256.Sum256([]byte(code))
	return "oid-" + hex.EncodeToString(sum[:14])
}

// adminSubject derives a stable UUID identifying the back-office operator,
// so audit entries written by admin actions carry a consistent operator id.
func adminSubject(username string) kernel.UUID {
	sum := sha256.Sum256([]byte("admin:" + username))
	id, err := kernel.UUIDFromBytes(sum[:16])
	if err != nil {
		return kernel.NewUUID()
	}
	return id
}
