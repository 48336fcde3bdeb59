// Package notificationrepo persists notifications with GORM.
package notificationrepo

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for notifications.
type NotificationDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID         uuid.UUID `gorm:"type:uuid;index"`
	Title             string
	Content           string
	Kind              string
	RelatedEntityType string
	RelatedEntityID   *uuid.UUID `gorm:"type:uuid"`
	Read              bool
	CreatedAt         time.Time `gorm:"index"`
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) NotificationDTO {
	var relatedEntityID *uuid.UUID
	if id := aggregate.RelatedEntityID(); id != nil {
		raw := id.Bytes()
		relatedEntityID = &raw
	}

	return NotificationDTO{
		ID:                aggregate.ID().Bytes(),
		AccountID:         aggregate.AccountID().Bytes(),
		Title:             aggregate.Title(),
		Content:           aggregate.Content(),
		Kind:              aggregate.Kind(),
		RelatedEntityType: aggregate.RelatedEntityType(),
		RelatedEntityID:   relatedEntityID,
		Read:              aggregate.Read(),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}

	var relatedEntityID *kernel.UUID
	if dto.RelatedEntityID != nil {
		rID, relatedErr := kernel.UUIDFromBytes((*dto.RelatedEntityID)[:])
		if relatedErr != nil {
			return nil, relatedErr
		}
		relatedEntityID = &rID
	}

	return notification.RestoreNotification(
		id,
		accountID,
		dto.Title,
		dto.Content,
		dto.Kind,
		dto.RelatedEntityType,
		relatedEntityID,
		dto.Read,
		dto.CreatedAt,
	)
}
