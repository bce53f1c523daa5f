package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(7, kernel.MustMoney("45.50"), "1 Main St", exampleItems(), order.Details{})

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, kernel.ID(7), cmd.UserID())
	assert.Equal(t, "45.50", cmd.TotalAmount().String())
	assert.Equal(t, "1 Main St", cmd.ShippingAddress())
	require.Len(t, cmd.Items(), 2)
	assert.Equal(t, "30.00", cmd.Items()[0].TotalPrice().String())
	assert.Equal(t, "15.50", cmd.Items()[1].TotalPrice().String())
}

func TestNewCreateOrderCommand_MissingFields(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(0, kernel.MustMoney("45.50"), "", nil, order.Details{})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "userId")
	assert.Contains(t, err.Error(), "shippingAddress")
	assert.ErrorIs(t, err, order.ErrOrderHasNoItems)
}

func TestNewCreateOrderCommand_InvalidItems(t *testing.T) {
	items := []commands.ItemSpec{
		{ProductID: 1, ProductName: "Widget", Quantity: 0, UnitPrice: kernel.MustMoney("10.00")},
		{ProductID: 0, ProductName: "Gadget", Quantity: 1, UnitPrice: kernel.MustMoney("15.50")},
	}

	_, err := commands.NewCreateOrderCommand(7, kernel.MustMoney("45.50"), "1 Main St", items, order.Details{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0]")
	assert.Contains(t, err.Error(), "items[1]")
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
