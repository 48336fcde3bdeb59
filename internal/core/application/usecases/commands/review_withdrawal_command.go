package commands

import (
	"errors"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var (
	ErrReviewWithdrawalCommandIsNotConstructed = errors.New(
		"ReviewWithdrawalCommand must be created via NewReviewWithdrawalCommand constructor",
	)
	ErrRejectReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// ReviewWithdrawalCommand represents an admin decision on a pending payout
// request: approve releases it, reject refunds the reserved amount.
type ReviewWithdrawalCommand struct { //nolint:recvcheck //using for validation
	withdrawalID kernel.UUID
	adminID      kernel.UUID
	approve      bool
	reason       string

	guard kernel.ConstructorGuard
}

// NewReviewWithdrawalCommand creates a new command to review a payout request.
// Rejections require a reason; approvals ignore it.
func NewReviewWithdrawalCommand(
	withdrawalID, adminID kernel.UUID,
	approve bool,
	reason string,
) (ReviewWithdrawalCommand, error) {
	command := ReviewWithdrawalCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		withdrawalID.Validate(),
		adminID.Validate(),
	); err != nil {
		return ReviewWithdrawalCommand{}, err
	}
	if !approve && reason == "" {
		return ReviewWithdrawalCommand{}, ErrRejectReasonIsRequired
	}

	command.withdrawalID = withdrawalID
	command.adminID = adminID
	command.approve = approve
	command.reason = reason
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrReviewWithdrawalCommandIsNotConstructed)
}

// WithdrawalID returns the request under review.
func (c ReviewWithdrawalCommand) WithdrawalID() kernel.UUID {
	return c.withdrawalID
}

// AdminID returns the reviewing admin.
func (c ReviewWithdrawalCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Approve reports whether the request is approved (true) or rejected (false).
func (c ReviewWithdrawalCommand) Approve() bool {
	return c.approve
}

// Reason returns the rejection reason, empty for approvals.
func (c ReviewWithdrawalCommand) Reason() string {
	return c.reason
}
