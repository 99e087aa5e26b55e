package commands_test

import (
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateParcelFeesCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		parcelID := kernel.NewUUID()
		fees := parcel.Fees{
			Freight:   money(t, "12.50"),
			Clearance: money(t, "3.00"),
		}

		cmd, err := commands.NewUpdateParcelFeesCommand(parcelID, fees)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.ParcelID().IsEqual(parcelID))
		assert.Equal(t, "15.50", cmd.Fees().Total().String())
	})

	t.Run("should allow zero fees", func(t *testing.T) {
		cmd, err := commands.NewUpdateParcelFeesCommand(kernel.NewUUID(), parcel.Fees{})

		require.NoError(t, err)
		assert.True(t, cmd.Fees().Total().IsZero())
	})

	t.Run("should fail with invalid parcel ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewUpdateParcelFeesCommand(invalidID, parcel.Fees{})

		require.Error(t, err)
	})

	t.Run("should fail with negative fee component", func(t *testing.T) {
		fees := parcel.Fees{Storage: money(t, "-1.00")}

		_, err := commands.NewUpdateParcelFeesCommand(kernel.NewUUID(), fees)

		require.Error(t, err)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		var cmd commands.UpdateParcelFeesCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateParcelFeesCommandIsNotConstructed)
	})
}
