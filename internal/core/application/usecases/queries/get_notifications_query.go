package queries

import (
	"errors"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves an account's notification inbox.
type GetNotificationsQuery struct {
	accountID  kernel.UUID
	unreadOnly bool

	guard kernel.ConstructorGuard
}

// NewGetNotificationsQuery creates an inbox query for an account.
func NewGetNotificationsQuery(accountID kernel.UUID, unreadOnly bool) (GetNotificationsQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetNotificationsQuery{}, err
	}
	return GetNotificationsQuery{
		accountID:  accountID,
		unreadOnly: unreadOnly,
		guard:      kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// AccountID returns the inbox owner.
func (q GetNotificationsQuery) AccountID() kernel.UUID {
	return q.accountID
}

// UnreadOnly reports whether read notifications are excluded.
func (q GetNotificationsQuery) UnreadOnly() bool {
	return q.unreadOnly
}

// GetNotificationsQueryResponse is the inbox read model.
type GetNotificationsQueryResponse struct {
	ID                kernel.UUID
	Title             string
	Content           string
	Kind              string
	RelatedEntityType string
	RelatedEntityID   *kernel.UUID
	Read              bool
	CreatedAt         time.Time
}
