package departure_test

import (
	"testing"

	"transit/internal/core/domain/model/departure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, departure.StatusOpen.Validate())
	require.NoError(t, departure.StatusSealed.Validate())
	require.NoError(t, departure.StatusClosed.Validate())
	require.Error(t, departure.StatusUnknown.Validate())
	require.Error(t, departure.Status(9).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Open", departure.StatusOpen.String())
	assert.Equal(t, "Sealed", departure.StatusSealed.String())
	assert.Equal(t, "Closed", departure.StatusClosed.String())
	assert.Equal(t, "Unknown", departure.Status(9).String())
}

func TestStatusFromString(t *testing.T) {
	status, err := departure.StatusFromString("sealed")
	require.NoError(t, err)
	assert.Equal(t, departure.StatusSealed, status)

	_, err = departure.StatusFromString("Departed")
	require.Error(t, err)
}

func TestStatus_Seal(t *testing.T) {
	t.Run("only Open can be sealed", func(t *testing.T) {
		status, err := departure.StatusOpen.Seal()
		require.NoError(t, err)
		assert.Equal(t, departure.StatusSealed, status)

		_, err = departure.StatusSealed.Seal()
		require.Error(t, err)

		_, err = departure.StatusClosed.Seal()
		require.Error(t, err)
	})
}

func TestStatus_Close(t *testing.T) {
	t.Run("only Sealed can be closed", func(t *testing.T) {
		status, err := departure.StatusSealed.Close()
		require.NoError(t, err)
		assert.Equal(t, departure.StatusClosed, status)

		_, err = departure.StatusOpen.Close()
		require.Error(t, err)

		_, err = departure.StatusClosed.Close()
		require.Error(t, err)
	})
}
