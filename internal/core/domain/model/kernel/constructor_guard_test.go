package kernel_test

import (
	"errors"
	"testing"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestConstructorGuard(t *testing.T) {
	errNotConstructed := errors.New("Thing must be created via NewThing")

	t.Run("constructed guard passes validation", func(t *testing.T) {
		g := kernel.NewConstructorGuard()
		assert.NoError(t, g.Validate(errNotConstructed))
	})

	t.Run("zero-value guard fails with supplied error", func(t *testing.T) {
		var g kernel.ConstructorGuard
		assert.ErrorIs(t, g.Validate(errNotConstructed), errNotConstructed)
	})

	t.Run("zero-value guard falls back to default error", func(t *testing.T) {
		var g kernel.ConstructorGuard
		assert.ErrorIs(t, g.Validate(nil), kernel.ErrDefaultConstructorGuard)
	})
}
