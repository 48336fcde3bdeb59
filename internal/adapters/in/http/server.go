// Package http exposes the application use cases over a REST API.
// Handlers translate requests into commands and queries and map domain
// errors onto HTTP statuses.
package http

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Read-side ports. Both the SQL-backed handlers in the queries package and
// the memory adapter's handlers satisfy them, so the same server runs
// against either.
type (
	// OrdersReader lists order read models.
	OrdersReader interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.GetOrdersQueryResponse, error)
	}

	// OrderTimelineReader renders one order's milestone track.
	OrderTimelineReader interface {
		Handle(ctx context.Context, query queries.GetOrderTimelineQuery) ([]queries.TimelineStep, error)
	}

	// WithdrawalsReader lists withdrawal read models.
	WithdrawalsReader interface {
		Handle(ctx context.Context, query queries.GetWithdrawalsQuery) ([]queries.GetWithdrawalsQueryResponse, error)
	}

	// MaterialsReader lists the material catalog.
	MaterialsReader interface {
		Handle(ctx context.Context, query queries.GetMaterialsQuery) ([]queries.GetMaterialsQueryResponse, error)
	}

	// NotificationsReader lists an account's inbox.
	NotificationsReader interface {
		Handle(ctx context.Context, query queries.GetNotificationsQuery) ([]queries.GetNotificationsQueryResponse, error)
	}

	// StatsReader computes the back-office dashboard numbers.
	StatsReader interface {
		Handle(ctx context.Context, query queries.GetStatsQuery) (queries.GetStatsQueryResponse, error)
	}

	// AuditLogReader pages through the audit trail.
	AuditLogReader interface {
		Handle(ctx context.Context, query queries.GetAuditLogQuery) ([]queries.GetAuditLogQueryResponse, error)
	}

	// CollectorProfileReader resolves an account's collector profile.
	CollectorProfileReader interface {
		Handle(ctx context.Context, query queries.GetCollectorProfileQuery) (queries.GetCollectorProfileQueryResponse, error)
	}

	// ConfigReader resolves a frontend surface's configuration blob.
	ConfigReader interface {
		Handle(ctx context.Context, query queries.GetConfigQuery) (queries.GetConfigQueryResponse, error)
	}
)

// Handlers bundles the command handlers the server dispatches to.
type Handlers struct {
	SignIn            commands.SignInCommandHandler
	CreateOrder       commands.CreateOrderCommandHandler
	AssignOrder       commands.AssignOrderCommandHandler
	ClaimOrder        commands.ClaimOrderCommandHandler
	CompleteOrder     commands.CompleteOrderCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	RequestWithdrawal commands.RequestWithdrawalCommandHandler
	ReviewWithdrawal  commands.ReviewWithdrawalCommandHandler
}

// Readers bundles the query handlers behind the read-side ports.
type Readers struct {
	Orders           OrdersReader
	OrderTimeline    OrderTimelineReader
	Withdrawals      WithdrawalsReader
	Materials        MaterialsReader
	Notifications    NotificationsReader
	Stats            StatsReader
	AuditLog         AuditLogReader
	CollectorProfile CollectorProfileReader
	Config           ConfigReader
}

// AdminCredentials hold the back-office login configured via environment.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	readers  Readers
	tokens   TokenIssuer
	admin    AdminCredentials
}

// NewServer creates an HTTP server over the given use cases.
func NewServer(handlers Handlers, readers Readers, tokens TokenIssuer, admin AdminCredentials) *Server {
	return &Server{
		handlers: handlers,
		readers:  readers,
		tokens:   tokens,
		admin:    admin,
	}
}

// RegisterRoutes wires the API onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/login", s.Login)
	e.POST("/admin/login", s.AdminLogin)

	// Config blobs render the pre-login screens, so no token is required.
	e.GET("/api/v1/config", s.GetConfigs)
	e.GET("/api/v1/config/:namespace", s.GetConfig)

	api := e.Group("/api/v1", s.authenticate)

	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.PUT("/orders/:id/assign", s.AssignOrder, s.requireAdmin)
	api.PUT("/orders/:id/claim", s.ClaimOrder)
	api.PUT("/orders/:id/complete", s.CompleteOrder)
	api.DELETE("/orders/:id", s.CancelOrder)
	api.GET("/orders/:id/timeline", s.GetOrderTimeline)

	api.GET("/withdrawals", s.GetWithdrawals)
	api.POST("/withdrawals", s.RequestWithdrawal)
	api.POST("/withdrawals/:id/approve", s.ApproveWithdrawal, s.requireAdmin)
	api.POST("/withdrawals/:id/reject", s.RejectWithdrawal, s.requireAdmin)

	api.GET("/materials", s.GetMaterials)
	api.GET("/notifications", s.GetNotifications)

	admin := api.Group("/admin", s.requireAdmin)
	admin.GET("/stats", s.GetStats)
	admin.GET("/audit-logs", s.GetAuditLogs)
}
