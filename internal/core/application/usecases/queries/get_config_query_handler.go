package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// GetConfigQueryHandler retrieves frontend configuration blobs from the
// database, falling back to the compiled-in defaults when no override row
// exists.
type GetConfigQueryHandler struct {
	db *gorm.DB
}

// NewGetConfigQueryHandler creates a handler for config lookups.
func NewGetConfigQueryHandler(db *gorm.DB) GetConfigQueryHandler {
	return GetConfigQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound for a namespace
// no surface uses.
func (h GetConfigQueryHandler) Handle(
	ctx context.Context,
	query GetConfigQuery,
) (GetConfigQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetConfigQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT value
		FROM system_configs
		WHERE key = ?
	`, query.Namespace()).Row()

	var raw string
	err := row.Scan(&raw)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return GetConfigQueryResponse{}, err
	}

	return DecodeConfig(query.Namespace(), []byte(raw))
}
