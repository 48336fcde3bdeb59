// Package configrepo holds the persistence model for frontend configuration
// overrides. Rows are written by operators; the application only reads them.
package configrepo

import "time"

// SystemConfigDTO represents the database structure for one namespace's
// configuration blob.
type SystemConfigDTO struct {
	ID          uint   `gorm:"primaryKey"`
	Key         string `gorm:"size:50;uniqueIndex"`
	Value       string `gorm:"type:jsonb"`
	Description string `gorm:"size:200"`
	UpdatedAt   time.Time
}

// TableName specifies the database table name for config entities.
func (SystemConfigDTO) TableName() string {
	return "system_configs"
}
