package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewUpdateDeliveryCommand_ValidInput(t *testing.T) {
	value, err := kernel.MoneyFromFloat(50.00)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDeliveryCommand(
		kernel.ID(42), &value, strPtr("updated paperwork"), nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, kernel.ID(42), cmd.DeliveryID())
	require.NotNil(t, cmd.Value())
	assert.True(t, value.IsEqual(*cmd.Value()))
	require.NotNil(t, cmd.Description())
	assert.Equal(t, "updated paperwork", *cmd.Description())
	assert.Nil(t, cmd.Category())
}

func TestNewUpdateDeliveryCommand_NothingToAmend(t *testing.T) {
	_, err := commands.NewUpdateDeliveryCommand(kernel.ID(42), nil, nil, nil, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNothingToAmend)
}

func TestNewUpdateDeliveryCommand_EmptyDescription(t *testing.T) {
	_, err := commands.NewUpdateDeliveryCommand(kernel.ID(42), nil, strPtr(""), nil, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDescriptionIsRequired)
}

func TestNewUpdateDeliveryCommand_InvalidID(t *testing.T) {
	_, err := commands.NewUpdateDeliveryCommand(kernel.ID(0), nil, strPtr("x"), nil, nil, nil)
	require.Error(t, err)
}
