package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/text/currency"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) money(amount int64) kernel.Money {
	m, err := kernel.NewMoney(amount, currency.EUR)
	suite.Require().NoError(err)
	return m
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	item, err := kernel.NewLineItem(kernel.NewUUID(), "Arabica beans 1kg", suite.money(2500), 3)
	suite.Require().NoError(err)

	pricing, err := order.NewPricing(suite.money(7500), suite.money(800),
		suite.money(0), suite.money(8300))
	suite.Require().NoError(err)

	delivery, err := order.NewDelivery("12 Quay Street", "R. Byrne", "+353-1-555-0101",
		time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), "09:00-12:00",
		kernel.UrgencyNormal, "ring the side bell")
	suite.Require().NoError(err)

	payment, err := order.NewPayment(order.PaymentPending, "card")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.LineItem{item}, pricing, delivery, payment,
		time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) advance(aggregate *order.Order, target order.Status) {
	changed, err := aggregate.TransitionTo(target, order.RoleSupplier, "",
		time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().True(changed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_Roundtrip() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(aggregate.ID()))
	suite.True(loaded.BuyerID().IsEqual(aggregate.BuyerID()))
	suite.True(loaded.SupplierID().IsEqual(aggregate.SupplierID()))
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(order.PaymentPending, loaded.Payment().Status())
	suite.Equal("card", loaded.Payment().Method())
	suite.Equal(int64(8300), loaded.Pricing().Total().Amount())
	suite.Equal(int64(800), loaded.Pricing().DeliveryFee().Amount())
	suite.Equal("12 Quay Street", loaded.Delivery().Address())
	suite.Equal(kernel.UrgencyNormal, loaded.Delivery().Urgency())
	suite.Equal(1, loaded.Version())

	suite.Require().Len(loaded.Items(), 1)
	suite.Equal("Arabica beans 1kg", loaded.Items()[0].Name())
	suite.Equal(3, loaded.Items()[0].Quantity())
	suite.Equal(int64(7500), loaded.Items()[0].LineTotal().Amount())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	aggregate := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	suite.advance(aggregate, order.Confirmed)
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
	suite.Equal(2, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	aggregate := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	// two copies of the same stored order
	first, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.advance(first, order.Confirmed)
	suite.Require().NoError(suite.repo.Update(ctx, first))

	suite.advance(second, order.Confirmed)
	err = suite.repo.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsDispatchAssignment() {
	ctx := context.Background()
	aggregate := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	suite.advance(aggregate, order.Confirmed)
	suite.advance(aggregate, order.Preparing)
	suite.advance(aggregate, order.ReadyForPickup)
	suite.Require().NoError(aggregate.RecordDispatchAttempt())

	ref, err := order.NewDispatchRef("TRK-314", time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AttachDispatch(ref))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.Dispatch())
	suite.Equal("TRK-314", loaded.Dispatch().TrackingID())
	suite.Equal(1, loaded.DispatchAttempts())
	suite.False(loaded.IsDispatchPending())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllAwaitingDispatch() {
	ctx := context.Background()

	waiting := suite.newOrder()
	suite.advance(waiting, order.Confirmed)
	suite.advance(waiting, order.Preparing)
	suite.advance(waiting, order.ReadyForPickup)
	suite.Require().NoError(suite.repo.Add(ctx, waiting))

	pending := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, pending))

	assigned := suite.newOrder()
	suite.advance(assigned, order.Confirmed)
	suite.advance(assigned, order.Preparing)
	suite.advance(assigned, order.ReadyForPickup)
	ref, err := order.NewDispatchRef("TRK-42", time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().NoError(assigned.AttachDispatch(ref))
	suite.Require().NoError(suite.repo.Add(ctx, assigned))

	awaiting, err := suite.repo.GetAllAwaitingDispatch(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(awaiting, 1)
	suite.True(awaiting[0].ID().IsEqual(waiting.ID()))
	suite.True(awaiting[0].IsDispatchPending())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
