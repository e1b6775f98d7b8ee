package commands_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func checkoutCommand(t *testing.T, buyerID, supplierID kernel.UUID, urgency kernel.Urgency) commands.CheckoutCommand {
	t.Helper()

	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), buyerID, supplierID,
		"12 Dockside Rd", "Ada Mercer", "+49 170 1234567",
		time.Now().AddDate(0, 0, 5), "09:00-12:00", urgency, "", "card")
	require.NoError(t, err)
	return cmd
}

func TestCheckoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	staged := cartWith(t, testProduct(t, 2500, 100, 1), 3)
	cmd := checkoutCommand(t, staged.BuyerID(), staged.SupplierID(), kernel.UrgencyNormal)

	cartRepo := new(MockCartRepository)
	catalogClient := new(MockCatalogClient)
	publisher := new(MockEventPublisher)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	var created *order.Order
	mock.InOrder(
		cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once(),
		catalogClient.On("GetDeliveryTerms", ctx, staged.SupplierID()).Return(testTerms(t), nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cartRepo.On("Delete", ctx, staged.BuyerID(), staged.SupplierID()).Return(nil).Once(),
		publisher.On("PublishOrderCreated", ctx, mock.AnythingOfType("ports.OrderCreatedEvent")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, cartRepo, catalogClient, publisher, slog.Default())
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, created)
	assert.Equal(t, order.Pending, created.Status())
	assert.Equal(t, int64(7500), created.Pricing().Subtotal().Amount())
	assert.Equal(t, int64(800), created.Pricing().DeliveryFee().Amount())
	assert.Equal(t, int64(8300), created.Pricing().Total().Amount())
	assert.Equal(t, order.PaymentPending, created.Payment().Status())

	cartRepo.AssertExpectations(t)
	catalogClient.AssertExpectations(t)
	publisher.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_ExpressSurcharge(t *testing.T) {
	ctx := t.Context()
	staged := cartWith(t, testProduct(t, 2500, 100, 1), 3)
	cmd := checkoutCommand(t, staged.BuyerID(), staged.SupplierID(), kernel.UrgencyExpress)

	cartRepo := new(MockCartRepository)
	catalogClient := new(MockCatalogClient)
	publisher := new(MockEventPublisher)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	var created *order.Order
	cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once()
	catalogClient.On("GetDeliveryTerms", ctx, staged.SupplierID()).Return(testTerms(t), nil).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	cartRepo.On("Delete", ctx, staged.BuyerID(), staged.SupplierID()).Return(nil).Once()
	publisher.On("PublishOrderCreated", ctx, mock.AnythingOfType("ports.OrderCreatedEvent")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, cartRepo, catalogClient, publisher, slog.Default())
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, created)
	assert.Equal(t, int64(1500), created.Pricing().UrgencySurcharge().Amount())
	assert.Equal(t, int64(9800), created.Pricing().Total().Amount())
}

func TestCheckoutCommandHandler_Handle_EmptyCart(t *testing.T) {
	ctx := t.Context()
	empty, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	cmd := checkoutCommand(t, empty.BuyerID(), empty.SupplierID(), kernel.UrgencyNormal)

	cartRepo := new(MockCartRepository)
	cartRepo.On("Get", ctx, empty.BuyerID(), empty.SupplierID()).Return(empty, nil).Once()

	h := commands.NewCheckoutCommandHandler(new(MockOrderUoWFactory), cartRepo,
		new(MockCatalogClient), new(MockEventPublisher), slog.Default())
	err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, commands.ErrCartIsEmpty)
}

func TestCheckoutCommandHandler_Handle_BelowMinimumOrder(t *testing.T) {
	ctx := t.Context()
	staged := cartWith(t, testProduct(t, 2000, 100, 1), 2) // 4000 < 5000 minimum
	cmd := checkoutCommand(t, staged.BuyerID(), staged.SupplierID(), kernel.UrgencyNormal)

	cartRepo := new(MockCartRepository)
	catalogClient := new(MockCatalogClient)
	cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once()
	catalogClient.On("GetDeliveryTerms", ctx, staged.SupplierID()).Return(testTerms(t), nil).Once()

	h := commands.NewCheckoutCommandHandler(new(MockOrderUoWFactory), cartRepo,
		catalogClient, new(MockEventPublisher), slog.Default())
	err := h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, services.ErrBelowMinimumOrder)
}

func TestCheckoutCommandHandler_Handle_DeliveryDateTooSoon(t *testing.T) {
	ctx := t.Context()
	staged := cartWith(t, testProduct(t, 2500, 100, 1), 3)

	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), staged.BuyerID(), staged.SupplierID(),
		"12 Dockside Rd", "Ada Mercer", "+49 170 1234567",
		time.Now().AddDate(0, 0, 1), "", kernel.UrgencyNormal, "", "card") // inside 2-day lead time
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	catalogClient := new(MockCatalogClient)
	cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once()
	catalogClient.On("GetDeliveryTerms", ctx, staged.SupplierID()).Return(testTerms(t), nil).Once()

	h := commands.NewCheckoutCommandHandler(new(MockOrderUoWFactory), cartRepo,
		catalogClient, new(MockEventPublisher), slog.Default())
	err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, commands.ErrDeliveryDateTooSoon)
}

func TestCheckoutCommandHandler_Handle_DeliveryDayUnavailable(t *testing.T) {
	ctx := t.Context()
	staged := cartWith(t, testProduct(t, 2500, 100, 1), 3)

	// Terms that only deliver on a weekday different from the requested date.
	requested := time.Now().AddDate(0, 0, 7)
	otherDay := (requested.Weekday() + 1) % 7

	surcharges, err := catalog.NewSurchargePolicy(money(t, 500), money(t, 1500))
	require.NoError(t, err)
	dt, err := catalog.NewDeliveryTerms(money(t, 5000), nil, money(t, 800), 2,
		[]time.Weekday{otherDay}, surcharges)
	require.NoError(t, err)

	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), staged.BuyerID(), staged.SupplierID(),
		"12 Dockside Rd", "Ada Mercer", "+49 170 1234567",
		requested, "", kernel.UrgencyNormal, "", "card")
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	catalogClient := new(MockCatalogClient)
	cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once()
	catalogClient.On("GetDeliveryTerms", ctx, staged.SupplierID()).Return(dt, nil).Once()

	h := commands.NewCheckoutCommandHandler(new(MockOrderUoWFactory), cartRepo,
		catalogClient, new(MockEventPublisher), slog.Default())
	err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, commands.ErrDeliveryDayUnavailable)
}

func TestCheckoutCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	staged := cartWith(t, testProduct(t, 2500, 100, 1), 3)
	cmd := checkoutCommand(t, staged.BuyerID(), staged.SupplierID(), kernel.UrgencyNormal)

	cartRepo := new(MockCartRepository)
	catalogClient := new(MockCatalogClient)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	cartRepo.On("Get", ctx, staged.BuyerID(), staged.SupplierID()).Return(staged, nil).Once()
	catalogClient.On("GetDeliveryTerms", ctx, staged.SupplierID()).Return(testTerms(t), nil).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("insert failed")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, cartRepo, catalogClient,
		new(MockEventPublisher), slog.Default())
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	// the cart must survive a failed checkout
	cartRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutCommand_Validation(t *testing.T) {
	_, err := commands.NewCheckoutCommand(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
		"addr", "name", "phone", time.Now(), "", kernel.UrgencyNormal, "", "card")
	assert.Error(t, err)

	_, err = commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"", "name", "phone", time.Now(), "", kernel.UrgencyNormal, "", "card")
	assert.Error(t, err)

	_, err = commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"addr", "name", "phone", time.Time{}, "", kernel.UrgencyNormal, "", "card")
	assert.Error(t, err)

	_, err = commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"addr", "name", "phone", time.Now(), "", kernel.UrgencyUnknown, "", "card")
	assert.Error(t, err)

	_, err = commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"addr", "name", "phone", time.Now(), "", kernel.UrgencyNormal, "", "")
	assert.Error(t, err)

	var notConstructed commands.CheckoutCommand
	assert.ErrorIs(t, notConstructed.Validate(), commands.ErrCheckoutCommandIsNotConstructed)
}
