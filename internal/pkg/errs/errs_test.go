package errs_test

import (
	"errors"
	"testing"

	"github.com/alanbulan/EcoLoop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "o-123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "o-123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: o-123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("collectorId", "c-9", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: collectorId, ID is: c-9 (cause: database connection failed)",
			err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown status string")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: status (cause: unknown status string)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("impurityPercent", 150.0, 0.0, 100.0)

		assert.Equal(t, "impurityPercent", err.ParamName)
		assert.Equal(t, 150.0, err.Value)
		assert.Equal(t, "value is invalid: 150 is impurityPercent, min value is 0, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitizes newlines in values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("collectorId")

	assert.Equal(t, "value is required: collectorId", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("order", "o-42")

		assert.Equal(t, "state conflict: o-42", err.Error())
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("already claimed")
		err := errs.NewConflictErrorWithCause("order", "o-42", cause)

		assert.Equal(t, "state conflict: param is: order, ID is: o-42 (cause: already claimed)", err.Error())
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}
