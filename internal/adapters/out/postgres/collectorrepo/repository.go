package collectorrepo

import (
	"context"
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/collector"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCollectorRepository implements CollectorRepository using GORM.
type GormCollectorRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCollectorRepository creates a new GORM collector repository.
func NewGormCollectorRepository(db *gorm.DB, tracker aggregateTracker) *GormCollectorRepository {
	return &GormCollectorRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new collector to the database.
func (r *GormCollectorRepository) Add(ctx context.Context, aggregate *collector.Collector) error {
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

// Update saves an existing collector to the database. Balance can drop to
// zero and the active flag can turn false, so the mutable columns are
// written explicitly.
func (r *GormCollectorRepository) Update(ctx context.Context, aggregate *collector.Collector) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CollectorDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":    dto.Name,
			"phone":   dto.Phone,
			"balance": dto.Balance,
			"rating":  dto.Rating,
			"active":  dto.Active,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("collector", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a collector by ID.
func (r *GormCollectorRepository) Get(ctx context.Context, id kernel.UUID) (*collector.Collector, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CollectorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("collector", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByAccountID retrieves the collector linked to a login account.
func (r *GormCollectorRepository) GetByAccountID(ctx context.Context, accountID kernel.UUID) (*collector.Collector, error) {
	if err := accountID.Validate(); err != nil {
		return nil, err
	}

	var dto CollectorDTO
	if err := r.db.WithContext(ctx).First(&dto, "account_id = ?", accountID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("collector", accountID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
