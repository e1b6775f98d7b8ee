package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddCartItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	product := testProduct(t, 2500, 100, 1)
	staged, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	cmd, err := commands.NewAddCartItemCommand(staged.BuyerID(), staged.SupplierID(), product.ID(), 3)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	catalogClient := new(MockCatalogClient)
	mock.InOrder(
		catalogClient.On("GetProduct", ctx, staged.SupplierID(), product.ID()).Return(product, nil).Once(),
		cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once(),
		cartRepo.On("Save", ctx, staged).Return(nil).Once(),
	)

	h := commands.NewAddCartItemCommandHandler(cartRepo, catalogClient)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, 3, staged.Quantity(product.ID()))
	assert.Equal(t, int64(7500), staged.Subtotal().Amount())
	cartRepo.AssertExpectations(t)
	catalogClient.AssertExpectations(t)
}

func TestAddCartItemCommandHandler_Handle_ExceedsStock(t *testing.T) {
	ctx := t.Context()
	product := testProduct(t, 2500, 5, 1)
	staged, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	cmd, err := commands.NewAddCartItemCommand(staged.BuyerID(), staged.SupplierID(), product.ID(), 6)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	catalogClient := new(MockCatalogClient)
	catalogClient.On("GetProduct", ctx, staged.SupplierID(), product.ID()).Return(product, nil).Once()
	cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once()

	h := commands.NewAddCartItemCommandHandler(cartRepo, catalogClient)
	err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, cart.ErrQuantityExceedsStock)
	assert.True(t, staged.IsEmpty())
	cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSetCartItemQuantityCommandHandler_Handle_ZeroRemovesLine(t *testing.T) {
	ctx := t.Context()
	product := testProduct(t, 2500, 100, 1)
	staged := cartWith(t, product, 3)

	cmd, err := commands.NewSetCartItemQuantityCommand(staged.BuyerID(), staged.SupplierID(), product.ID(), 0)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	catalogClient := new(MockCatalogClient)
	catalogClient.On("GetProduct", ctx, staged.SupplierID(), product.ID()).Return(product, nil).Once()
	cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once()
	cartRepo.On("Save", ctx, staged).Return(nil).Once()

	h := commands.NewSetCartItemQuantityCommandHandler(cartRepo, catalogClient)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, staged.IsEmpty())
}

func TestRemoveCartItemCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	product := testProduct(t, 2500, 100, 1)
	staged := cartWith(t, product, 3)

	cmd, err := commands.NewRemoveCartItemCommand(staged.BuyerID(), staged.SupplierID(), product.ID())
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	mock.InOrder(
		cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once(),
		cartRepo.On("Save", ctx, staged).Return(nil).Once(),
	)

	h := commands.NewRemoveCartItemCommandHandler(cartRepo)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, staged.IsEmpty())
	cartRepo.AssertExpectations(t)
}

func TestCartCommands_Validation(t *testing.T) {
	_, err := commands.NewAddCartItemCommand(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), 1)
	assert.Error(t, err)

	_, err = commands.NewAddCartItemCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0)
	assert.ErrorIs(t, err, commands.ErrDeltaQtyIsZero)

	_, err = commands.NewSetCartItemQuantityCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), -1)
	assert.Error(t, err)

	_, err = commands.NewRemoveCartItemCommand(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID())
	assert.Error(t, err)
}
