package queries

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

const (
	defaultAuditLogLimit = 200
	maxAuditLogLimit     = 1000
)

// GetAuditLogQuery retrieves a page of audit entries, newest first.
type GetAuditLogQuery struct {
	limit  int
	offset int
}

// NewGetAuditLogQuery creates an audit log page query. A zero limit falls
// back to the default page size.
func NewGetAuditLogQuery(limit int, offset int) (GetAuditLogQuery, error) {
	if limit < 0 || limit > maxAuditLogLimit {
		return GetAuditLogQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, maxAuditLogLimit)
	}
	if offset < 0 {
		return GetAuditLogQuery{}, errs.NewValueIsInvalidError("offset")
	}
	if limit == 0 {
		limit = defaultAuditLogLimit
	}
	return GetAuditLogQuery{limit: limit, offset: offset}, nil
}

// Limit returns the page size.
func (q GetAuditLogQuery) Limit() int {
	return q.limit
}

// Offset returns the page offset.
func (q GetAuditLogQuery) Offset() int {
	return q.offset
}

// GetAuditLogQueryResponse is the audit trail read model.
type GetAuditLogQueryResponse struct {
	ID           kernel.UUID
	EntityType   string
	EntityID     kernel.UUID
	Action       string
	OldValue     string
	NewValue     string
	OperatorType string
	OperatorID   *kernel.UUID
	CreatedAt    time.Time
}
