package parcel_test

import (
	"testing"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		statuses := []parcel.Status{
			parcel.Pending, parcel.Processing, parcel.Shipped,
			parcel.Customs, parcel.Ready, parcel.Delivered, parcel.Delayed,
		}

		for _, s := range statuses {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject Unknown", func(t *testing.T) {
		err := parcel.Unknown.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out-of-range value", func(t *testing.T) {
		err := parcel.Status(99).Validate()

		require.Error(t, err)
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should render human-readable names", func(t *testing.T) {
		assert.Equal(t, "Pending", parcel.Pending.String())
		assert.Equal(t, "Processing", parcel.Processing.String())
		assert.Equal(t, "Shipped", parcel.Shipped.String())
		assert.Equal(t, "Customs", parcel.Customs.String())
		assert.Equal(t, "Ready", parcel.Ready.String())
		assert.Equal(t, "Delivered", parcel.Delivered.String())
		assert.Equal(t, "Delayed", parcel.Delayed.String())
	})

	t.Run("should render Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", parcel.Unknown.String())
		assert.Equal(t, "Unknown", parcel.Status(42).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every valid name back to its status", func(t *testing.T) {
		statuses := []parcel.Status{
			parcel.Pending, parcel.Processing, parcel.Shipped,
			parcel.Customs, parcel.Ready, parcel.Delivered, parcel.Delayed,
		}

		for _, want := range statuses {
			got, err := parcel.StatusFromString(want.String())

			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should reject Unknown by name", func(t *testing.T) {
		_, err := parcel.StatusFromString("Unknown")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unrecognized names", func(t *testing.T) {
		_, err := parcel.StatusFromString("Lost")

		require.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should permit each forward chain step", func(t *testing.T) {
		chain := []parcel.Status{
			parcel.Pending, parcel.Processing, parcel.Shipped,
			parcel.Customs, parcel.Ready, parcel.Delivered,
		}

		for i := 0; i < len(chain)-1; i++ {
			assert.True(t, chain[i].CanTransitionTo(chain[i+1]),
				"%s -> %s", chain[i], chain[i+1])
		}
	})

	t.Run("should forbid skipping chain steps", func(t *testing.T) {
		assert.False(t, parcel.Pending.CanTransitionTo(parcel.Shipped))
		assert.False(t, parcel.Processing.CanTransitionTo(parcel.Ready))
		assert.False(t, parcel.Customs.CanTransitionTo(parcel.Delivered))
	})

	t.Run("should forbid moving backwards", func(t *testing.T) {
		assert.False(t, parcel.Processing.CanTransitionTo(parcel.Pending))
		assert.False(t, parcel.Ready.CanTransitionTo(parcel.Customs))
	})

	t.Run("should allow entering Delayed from any non-terminal status", func(t *testing.T) {
		for _, s := range []parcel.Status{
			parcel.Pending, parcel.Processing, parcel.Shipped,
			parcel.Customs, parcel.Ready,
		} {
			assert.True(t, s.CanTransitionTo(parcel.Delayed), s.String())
		}
	})

	t.Run("should forbid Delayed from terminal and from itself", func(t *testing.T) {
		assert.False(t, parcel.Delivered.CanTransitionTo(parcel.Delayed))
		assert.False(t, parcel.Delayed.CanTransitionTo(parcel.Delayed))
	})

	t.Run("should permit nothing out of Delivered", func(t *testing.T) {
		for _, s := range []parcel.Status{
			parcel.Pending, parcel.Processing, parcel.Shipped,
			parcel.Customs, parcel.Ready, parcel.Delayed,
		} {
			assert.False(t, parcel.Delivered.CanTransitionTo(s), s.String())
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, parcel.Delivered.IsTerminal())
	assert.False(t, parcel.Ready.IsTerminal())
	assert.False(t, parcel.Delayed.IsTerminal())
}

func TestStatus_Priority(t *testing.T) {
	t.Run("should order the forward chain ascending", func(t *testing.T) {
		assert.Greater(t, parcel.Delivered.Priority(), parcel.Ready.Priority())
		assert.Greater(t, parcel.Ready.Priority(), parcel.Customs.Priority())
		assert.Greater(t, parcel.Customs.Priority(), parcel.Shipped.Priority())
		assert.Greater(t, parcel.Shipped.Priority(), parcel.Processing.Priority())
		assert.Greater(t, parcel.Processing.Priority(), parcel.Pending.Priority())
	})

	t.Run("Delayed should never outweigh a chain status", func(t *testing.T) {
		assert.Equal(t, 0, parcel.Delayed.Priority())
		assert.Less(t, parcel.Delayed.Priority(), parcel.Pending.Priority())
	})
}
