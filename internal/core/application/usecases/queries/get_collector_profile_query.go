package queries

import (
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

var ErrGetCollectorProfileQueryIsNotConstructed = errors.New(
	"GetCollectorProfileQuery must be created via NewGetCollectorProfileQuery constructor",
)

// GetCollectorProfileQuery resolves the collector profile linked to an
// account. Login uses it to decide whether the signed-in account can work
// the claimable pool.
type GetCollectorProfileQuery struct {
	accountID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetCollectorProfileQuery creates a query for one account's collector profile.
func NewGetCollectorProfileQuery(accountID kernel.UUID) (GetCollectorProfileQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetCollectorProfileQuery{}, err
	}
	return GetCollectorProfileQuery{
		accountID: accountID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCollectorProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetCollectorProfileQueryIsNotConstructed)
}

// AccountID returns the account whose profile is requested.
func (q GetCollectorProfileQuery) AccountID() kernel.UUID {
	return q.accountID
}

// GetCollectorProfileQueryResponse is the collector profile read model.
type GetCollectorProfileQueryResponse struct {
	ID      kernel.UUID
	Name    string
	Phone   string
	Balance float64
	Rating  float64
	Active  bool
}
