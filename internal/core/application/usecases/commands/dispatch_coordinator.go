package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// errDispatchAborted signals that the order no longer needs a courier: it
// left ReadyForPickup or an assignment already arrived. Not an error for the
// caller, just a reason to stop retrying.
var errDispatchAborted = errors.New("dispatch no longer needed")

// DispatchCoordinatorConfig tunes the retry behavior of the coordinator.
type DispatchCoordinatorConfig struct {
	// InitialBackoff is the wait before the second attempt. Default 5s.
	InitialBackoff time.Duration
	// BackoffFactor multiplies the wait after each failed attempt. Default 2.
	BackoffFactor float64
	// MaxAttempts caps the total attempts per trigger, first one included.
	// Default 5.
	MaxAttempts int
	// RequestTimeout bounds each delivery-network call. Default 3s.
	RequestTimeout time.Duration
}

func (c DispatchCoordinatorConfig) withDefaults() DispatchCoordinatorConfig {
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 5 * time.Second
	}
	if c.BackoffFactor <= 1 {
		c.BackoffFactor = 2
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 3 * time.Second
	}
	return c
}

// DispatchCoordinator obtains courier assignments for orders that became
// ready for pickup. The first attempt runs synchronously in the caller's
// context; failures move to a background goroutine that retries with
// exponential backoff and gives up after the attempt cap, leaving the order
// for the recovery sweep. One trigger is live per order at a time; the order
// status transition that caused the request never waits or fails because of
// the delivery network.
type DispatchCoordinator struct {
	uowFactory OrderUoWFactory
	client     ports.DispatchClient
	logger     *slog.Logger
	cfg        DispatchCoordinatorConfig

	mu       sync.Mutex
	inFlight map[kernel.UUID]struct{}

	wg       sync.WaitGroup
	done     chan struct{}
	stopOnce sync.Once
}

// NewDispatchCoordinator creates a dispatch coordinator. Zero config fields
// fall back to the defaults (5s initial backoff, factor 2, 5 attempts, 3s
// request timeout).
func NewDispatchCoordinator(uowFactory OrderUoWFactory, client ports.DispatchClient,
	logger *slog.Logger, cfg DispatchCoordinatorConfig) *DispatchCoordinator {
	return &DispatchCoordinator{
		uowFactory: uowFactory,
		client:     client,
		logger:     logger.With("component", "dispatch_coordinator"),
		cfg:        cfg.withDefaults(),
		inFlight:   make(map[kernel.UUID]struct{}),
		done:       make(chan struct{}),
	}
}

// RequestDispatch triggers the courier workflow for an order. The first
// attempt runs before returning; a transient failure schedules background
// retries and still returns nil. A trigger for an order that already has one
// live is a no-op.
func (c *DispatchCoordinator) RequestDispatch(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if _, exists := c.inFlight[orderID]; exists {
		c.mu.Unlock()
		return nil
	}
	c.inFlight[orderID] = struct{}{}
	c.mu.Unlock()

	err := c.attempt(ctx, orderID)
	if err == nil || errors.Is(err, errDispatchAborted) {
		c.finish(orderID)
		return nil
	}

	c.logger.Warn("dispatch attempt failed, scheduling retries",
		"order_id", orderID, "error", err)

	c.wg.Add(1)
	go c.retry(orderID)
	return nil
}

// Stop tells background retries to abandon their waits. Safe to call more
// than once.
func (c *DispatchCoordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}

// Wait blocks until all background retry goroutines have exited.
func (c *DispatchCoordinator) Wait() {
	c.wg.Wait()
}

// retry runs attempts 2..MaxAttempts in the background, detached from the
// triggering request's context.
func (c *DispatchCoordinator) retry(orderID kernel.UUID) {
	defer c.wg.Done()
	defer c.finish(orderID)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.InitialBackoff
	bo.Multiplier = c.cfg.BackoffFactor
	bo.RandomizationFactor = 0
	bo.MaxInterval = 24 * time.Hour
	bo.MaxElapsedTime = 0
	bo.Reset()

	for attempt := 2; attempt <= c.cfg.MaxAttempts; attempt++ {
		timer := time.NewTimer(bo.NextBackOff())
		select {
		case <-c.done:
			timer.Stop()
			return
		case <-timer.C:
		}

		err := c.attempt(context.Background(), orderID)
		if err == nil {
			return
		}
		if errors.Is(err, errDispatchAborted) {
			c.logger.Info("dispatch retries abandoned, order moved on", "order_id", orderID)
			return
		}

		c.logger.Warn("dispatch attempt failed",
			"order_id", orderID, "attempt", attempt, "error", err)
	}

	c.logger.Error("dispatch attempts exhausted, order left for recovery sweep",
		"order_id", orderID, "max_attempts", c.cfg.MaxAttempts)
}

// attempt makes one courier request for the order. The attempt counter is
// persisted whether or not the network call succeeds; on success the
// assignment is attached in the same transaction.
func (c *DispatchCoordinator) attempt(ctx context.Context, orderID kernel.UUID) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if aggregate.Status() != order.ReadyForPickup || !aggregate.IsDispatchPending() {
		return errDispatchAborted
	}

	if err = aggregate.RecordDispatchAttempt(); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	assignment, reqErr := c.client.RequestCourier(reqCtx, dispatchRequestFor(aggregate))
	cancel()

	if reqErr != nil {
		// Persist the attempt count so the sweep and operators see the history.
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}
		return reqErr
	}

	ref, err := order.NewDispatchRef(assignment.TrackingID, assignment.AssignedAt)
	if err != nil {
		return err
	}
	if err = aggregate.AttachDispatch(ref); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	c.logger.Info("courier assigned",
		"order_id", orderID, "tracking_id", assignment.TrackingID,
		"attempts", aggregate.DispatchAttempts())
	return nil
}

func (c *DispatchCoordinator) finish(orderID kernel.UUID) {
	c.mu.Lock()
	delete(c.inFlight, orderID)
	c.mu.Unlock()
}

func dispatchRequestFor(aggregate *order.Order) ports.DispatchRequest {
	delivery := aggregate.Delivery()
	return ports.DispatchRequest{
		OrderID:      aggregate.ID(),
		SupplierID:   aggregate.SupplierID(),
		Address:      delivery.Address(),
		ContactName:  delivery.ContactName(),
		ContactPhone: delivery.ContactPhone(),
		DeliveryDate: delivery.Date(),
		TimeSlot:     delivery.TimeSlot(),
		Urgency:      delivery.Urgency(),
	}
}
