package withdrawalrepo

import (
	"context"
	"errors"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWithdrawalRepository implements WithdrawalRepository using GORM.
type GormWithdrawalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWithdrawalRepository creates a new GORM withdrawal repository.
func NewGormWithdrawalRepository(db *gorm.DB, tracker aggregateTracker) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new withdrawal to the database.
func (r *GormWithdrawalRepository) Add(ctx context.Context, aggregate *withdrawal.Withdrawal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing withdrawal to the database. Only the review
// outcome ever changes after creation.
func (r *GormWithdrawalRepository) Update(ctx context.Context, aggregate *withdrawal.Withdrawal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WithdrawalDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":        dto.Status,
			"reject_reason": dto.RejectReason,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("withdrawal", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a withdrawal by ID.
func (r *GormWithdrawalRepository) Get(ctx context.Context, id kernel.UUID) (*withdrawal.Withdrawal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WithdrawalDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("withdrawal", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the withdrawal tied to an order, if any.
func (r *GormWithdrawalRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*withdrawal.Withdrawal, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto WithdrawalDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("withdrawal", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingBefore retrieves pending requests made before the cutoff.
func (r *GormWithdrawalRepository) GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*withdrawal.Withdrawal, error) {
	var dtos []WithdrawalDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND requested_at < ?", withdrawal.Pending.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	withdrawals := make([]*withdrawal.Withdrawal, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}

	return withdrawals, nil
}
