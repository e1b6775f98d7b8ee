package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := orderInStatus(t, order.Confirmed)
	cmd, err := commands.NewMarkPaymentCommand(aggregate.ID(), order.PaymentCompleted)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkPaymentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.PaymentCompleted, aggregate.Payment().Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestMarkPaymentCommand_Validation(t *testing.T) {
	_, err := commands.NewMarkPaymentCommand(kernel.UUID{}, order.PaymentCompleted)
	assert.Error(t, err)

	_, err = commands.NewMarkPaymentCommand(kernel.NewUUID(), order.PaymentUnknown)
	assert.Error(t, err)

	var notConstructed commands.MarkPaymentCommand
	assert.ErrorIs(t, notConstructed.Validate(), commands.ErrMarkPaymentCommandIsNotConstructed)
}
