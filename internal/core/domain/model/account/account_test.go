package account_test

import (
	"testing"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/account"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("registers with explicit name", func(t *testing.T) {
		a, err := account.NewAccount(kernel.NewUUID(), "oid_12345678", "Li Na")

		require.NoError(t, err)
		assert.NoError(t, a.Validate())
		assert.Equal(t, "Li Na", a.Name())
		assert.InDelta(t, 0.0, a.Balance(), 1e-9)
		assert.Zero(t, a.Points())
	})

	t.Run("derives name from openid when empty", func(t *testing.T) {
		a, err := account.NewAccount(kernel.NewUUID(), "oid_12345678", "")

		require.NoError(t, err)
		assert.Equal(t, "User_5678", a.Name())
	})

	t.Run("rejects empty openid", func(t *testing.T) {
		_, err := account.NewAccount(kernel.NewUUID(), "", "Li Na")
		assert.ErrorIs(t, err, account.ErrOpenIDIsRequired)
	})
}

func TestAccountSettlement(t *testing.T) {
	t.Run("credits payout and accrues points", func(t *testing.T) {
		a, err := account.NewAccount(kernel.NewUUID(), "oid", "Li Na")
		require.NoError(t, err)

		require.NoError(t, a.CreditSettlement(15.00, 10))

		assert.InDelta(t, 15.00, a.Balance(), 1e-9)
		assert.Equal(t, 100, a.Points())
	})

	t.Run("rejects negative figures", func(t *testing.T) {
		a, err := account.NewAccount(kernel.NewUUID(), "oid", "Li Na")
		require.NoError(t, err)

		assert.Error(t, a.CreditSettlement(-1, 10))
		assert.Error(t, a.CreditSettlement(10, -1))
	})
}

func TestAccountDebit(t *testing.T) {
	newFunded := func(t *testing.T) *account.Account {
		a, err := account.NewAccount(kernel.NewUUID(), "oid", "Li Na")
		require.NoError(t, err)
		require.NoError(t, a.Credit(50.00))
		return a
	}

	t.Run("debit within balance", func(t *testing.T) {
		a := newFunded(t)
		require.NoError(t, a.Debit(20.00))
		assert.InDelta(t, 30.00, a.Balance(), 1e-9)
	})

	t.Run("debit beyond balance fails without mutation", func(t *testing.T) {
		a := newFunded(t)
		assert.ErrorIs(t, a.Debit(50.01), account.ErrInsufficientFunds)
		assert.InDelta(t, 50.00, a.Balance(), 1e-9)
	})

	t.Run("refund after rejection restores balance", func(t *testing.T) {
		a := newFunded(t)
		require.NoError(t, a.Debit(50.00))
		require.NoError(t, a.Credit(50.00))
		assert.InDelta(t, 50.00, a.Balance(), 1e-9)
	})
}

func TestRestoreAccount(t *testing.T) {
	t.Run("restores balance and points", func(t *testing.T) {
		a, err := account.RestoreAccount(kernel.NewUUID(), "oid", "Li Na", 12.34, 70)

		require.NoError(t, err)
		assert.InDelta(t, 12.34, a.Balance(), 1e-9)
		assert.Equal(t, 70, a.Points())
	})

	t.Run("rejects negative balance", func(t *testing.T) {
		_, err := account.RestoreAccount(kernel.NewUUID(), "oid", "Li Na", -1, 0)
		assert.Error(t, err)
	})
}
