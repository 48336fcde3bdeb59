package cmd

import (
	"log/slog"
	"os"

	httpin "github.com/alanbulan/EcoLoop/internal/adapters/in/http"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/postgres"
	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/queries"
	"github.com/alanbulan/EcoLoop/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	handlers := httpin.Handlers{
		SignIn:            commands.NewSignInCommandHandler(c.accountUoWFactory()),
		CreateOrder:       commands.NewCreateOrderCommandHandler(c.orderUoWFactory()),
		AssignOrder:       commands.NewAssignOrderCommandHandler(c.scheduleUoWFactory()),
		ClaimOrder:        commands.NewClaimOrderCommandHandler(c.scheduleUoWFactory()),
		CompleteOrder:     commands.NewCompleteOrderCommandHandler(c.settlementUoWFactory()),
		CancelOrder:       commands.NewCancelOrderCommandHandler(c.orderUoWFactory()),
		RequestWithdrawal: commands.NewRequestWithdrawalCommandHandler(c.withdrawalUoWFactory()),
		ReviewWithdrawal:  commands.NewReviewWithdrawalCommandHandler(c.withdrawalUoWFactory()),
	}

	readers := httpin.Readers{
		Orders:           queries.NewGetOrdersQueryHandler(c.gormDB),
		OrderTimeline:    queries.NewGetOrderTimelineQueryHandler(c.gormDB),
		Withdrawals:      queries.NewGetWithdrawalsQueryHandler(c.gormDB),
		Materials:        queries.NewGetMaterialsQueryHandler(c.gormDB),
		Notifications:    queries.NewGetNotificationsQueryHandler(c.gormDB),
		Stats:            queries.NewGetStatsQueryHandler(c.gormDB),
		AuditLog:         queries.NewGetAuditLogQueryHandler(c.gormDB),
		CollectorProfile: queries.NewGetCollectorProfileQueryHandler(c.gormDB),
		Config:           queries.NewGetConfigQueryHandler(c.gormDB),
	}

	tokens := httpin.NewTokenIssuer(c.config.JWTSecret, c.config.TokenTTL)
	admin := httpin.AdminCredentials{
		Username:     c.config.AdminUsername,
		PasswordHash: c.config.AdminPasswordHash,
	}

	return httpin.NewServer(handlers, readers, tokens, admin)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		commands.NewExpireOrdersCommandHandler(c.expiryUoWFactory()),
		commands.NewExpireWithdrawalsCommandHandler(c.expiryUoWFactory()),
		jobs.ExpiryWindows{
			Order:      c.config.OrderExpiryWindow,
			Withdrawal: c.config.WithdrawalExpiryWindow,
		},
		c.logger,
	)
}

func (c *CompositionRoot) accountUoWFactory() commands.AccountUoWFactory {
	return FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) scheduleUoWFactory() commands.ScheduleUoWFactory {
	return FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) settlementUoWFactory() commands.SettlementUoWFactory {
	return FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) withdrawalUoWFactory() commands.WithdrawalUoWFactory {
	return FuncWithdrawalUoWFactory(func() commands.WithdrawalUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) expiryUoWFactory() commands.ExpiryUoWFactory {
	return FuncExpiryUoWFactory(func() commands.ExpiryUoW {
		return c.uowFactory.Create()
	})
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncScheduleUoWFactory func() commands.ScheduleUoW

func (f FuncScheduleUoWFactory) Create() commands.ScheduleUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncWithdrawalUoWFactory func() commands.WithdrawalUoW

func (f FuncWithdrawalUoWFactory) Create() commands.WithdrawalUoW {
	return f()
}

type FuncExpiryUoWFactory func() commands.ExpiryUoW

func (f FuncExpiryUoWFactory) Create() commands.ExpiryUoW {
	return f()
}
