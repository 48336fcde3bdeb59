package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCollectorProfileQueryHandler retrieves the collector profile bound to
// an account.
type GetCollectorProfileQueryHandler struct {
	db *gorm.DB
}

// NewGetCollectorProfileQueryHandler creates a handler for profile lookups.
func NewGetCollectorProfileQueryHandler(db *gorm.DB) GetCollectorProfileQueryHandler {
	return GetCollectorProfileQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the account
// has no collector profile.
func (h GetCollectorProfileQueryHandler) Handle(
	ctx context.Context,
	query GetCollectorProfileQuery,
) (GetCollectorProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCollectorProfileQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, name, phone, balance, rating, active
		FROM collectors
		WHERE account_id = ?
	`, query.AccountID().Bytes()).Row()

	var response GetCollectorProfileQueryResponse
	var id uuid.UUID
	err := row.Scan(&id, &response.Name, &response.Phone, &response.Balance, &response.Rating, &response.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCollectorProfileQueryResponse{},
			errs.NewObjectNotFoundError("collector", query.AccountID().String())
	}
	if err != nil {
		return GetCollectorProfileQueryResponse{}, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetCollectorProfileQueryResponse{}, err
	}
	return response, nil
}
