package auditrepo

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Add saves a new audit entry to the database.
func (r *GormAuditRepository) Add(ctx context.Context, entry *audit.Entry) error {
	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByEntity retrieves all entries for one entity in creation order.
func (r *GormAuditRepository) GetByEntity(ctx context.Context, entityType string, entityID kernel.UUID) ([]*audit.Entry, error) {
	if err := entityID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AuditLogDTO
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&dtos, "entity_type = ? AND entity_id = ?", entityType, entityID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
