package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("should create valid ID from positive value", func(t *testing.T) {
		id, err := kernel.NewID(42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), id.Int64())
		assert.Equal(t, "42", id.String())
		assert.False(t, id.IsZero())
	})

	t.Run("should reject zero and negative values", func(t *testing.T) {
		for _, value := range []int64{0, -1, -100} {
			_, err := kernel.NewID(value)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)

			var requiredErr *errs.ValueIsRequiredError
			require.ErrorAs(t, err, &requiredErr)
			assert.Equal(t, "id", requiredErr.ParamName)
		}
	})
}

func TestID_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var id kernel.ID

		require.Error(t, id.Validate())
		assert.True(t, id.IsZero())
	})

	t.Run("assigned value is valid", func(t *testing.T) {
		id := kernel.ID(7)

		require.NoError(t, id.Validate())
	})
}
