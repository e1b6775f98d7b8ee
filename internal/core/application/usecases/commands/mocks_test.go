package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, aggregate *invoice.Invoice) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) NextNumber(ctx context.Context, supplierID kernel.UUID) (int, error) {
	args := m.Called(ctx, supplierID)
	return args.Int(0), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Get(ctx context.Context, buyerID, supplierID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, buyerID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, buyerID, supplierID kernel.UUID) error {
	args := m.Called(ctx, buyerID, supplierID)
	return args.Error(0)
}

type MockCatalogClient struct{ mock.Mock }

func (m *MockCatalogClient) GetProduct(ctx context.Context, supplierID, productID kernel.UUID) (catalog.Product, error) {
	args := m.Called(ctx, supplierID, productID)
	return args.Get(0).(catalog.Product), args.Error(1)
}

func (m *MockCatalogClient) GetDeliveryTerms(ctx context.Context, supplierID kernel.UUID) (catalog.DeliveryTerms, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(catalog.DeliveryTerms), args.Error(1)
}

func (m *MockCatalogClient) ReleaseReservation(ctx context.Context, supplierID, orderID kernel.UUID) error {
	args := m.Called(ctx, supplierID, orderID)
	return args.Error(0)
}

type MockDispatchClient struct{ mock.Mock }

func (m *MockDispatchClient) RequestCourier(ctx context.Context, request ports.DispatchRequest) (ports.DispatchAssignment, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(ports.DispatchAssignment), args.Error(1)
}

type MockInvoiceMailer struct{ mock.Mock }

func (m *MockInvoiceMailer) Send(ctx context.Context, aggregate *invoice.Invoice, recipient, artifact string) error {
	args := m.Called(ctx, aggregate, recipient, artifact)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, event ports.OrderCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishInvoiceSent(ctx context.Context, event ports.InvoiceSentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDispatchRequester struct{ mock.Mock }

func (m *MockDispatchRequester) RequestDispatch(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// --- fixtures ---

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, currency.EUR)
	require.NoError(t, err)
	return m
}

func testProduct(t *testing.T, unitPrice int64, stock, minQty int) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(kernel.NewUUID(), gofakeit.ProductName(), money(t, unitPrice), stock, minQty)
	require.NoError(t, err)
	return p
}

// testTerms: minimum 5000, free delivery from 10000, base fee 800,
// urgent +500, express +1500, lead time 2 days, delivers every day.
func testTerms(t *testing.T) catalog.DeliveryTerms {
	t.Helper()

	surcharges, err := catalog.NewSurchargePolicy(money(t, 500), money(t, 1500))
	require.NoError(t, err)

	threshold := money(t, 10000)
	dt, err := catalog.NewDeliveryTerms(money(t, 5000), &threshold, money(t, 800), 2,
		[]time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		}, surcharges)
	require.NoError(t, err)
	return dt
}

func cartWith(t *testing.T, product catalog.Product, quantity int) *cart.Cart {
	t.Helper()

	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, c.SetItemQuantity(product, quantity))
	return c
}

func orderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	items := []kernel.LineItem{}
	li, err := kernel.NewLineItem(kernel.NewUUID(), gofakeit.ProductName(), money(t, 2500), 3)
	require.NoError(t, err)
	items = append(items, li)

	pricing, err := order.NewPricing(money(t, 7500), money(t, 800), money(t, 0), money(t, 8300))
	require.NoError(t, err)

	delivery, err := order.NewDelivery(gofakeit.Address().Address, gofakeit.Name(), gofakeit.Phone(),
		time.Now().AddDate(0, 0, 3), "", kernel.UrgencyNormal, "")
	require.NoError(t, err)

	payment, err := order.NewPayment(order.PaymentPending, "card")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		items, pricing, delivery, payment, time.Now())
	require.NoError(t, err)

	steps := []struct {
		to   order.Status
		role order.Role
	}{
		{order.Confirmed, order.RoleSupplier},
		{order.Preparing, order.RoleSupplier},
		{order.ReadyForPickup, order.RoleSupplier},
		{order.InTransit, order.RoleDispatch},
		{order.Delivered, order.RoleDispatch},
	}
	for _, step := range steps {
		if o.Status() == status {
			break
		}
		changed, err := o.TransitionTo(step.to, step.role, "", time.Now())
		require.NoError(t, err)
		require.True(t, changed)
	}
	require.Equal(t, status, o.Status())
	return o
}
