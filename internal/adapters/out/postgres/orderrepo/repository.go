package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.OrderRepository = &GormOrderRepository{}

// GormOrderRepository implements ports.OrderRepository on top of gorm.
// Concurrent modification is guarded by the version column: every Update
// bumps it and matches on the version the aggregate was loaded with.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates an order repository using the given
// connection, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// Update persists the aggregate, bumping its version. A row that is missing
// or was modified since the aggregate was loaded surfaces as
// errs.ErrVersionIsInvalid, so the caller retries from a fresh read.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(dto)
	if result.Error != nil {
		return fmt.Errorf("update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError(aggregate.ID().String(),
			fmt.Errorf("no order row with version %d", loadedVersion))
	}

	return nil
}

// Get loads one order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}

	return dto.toDomain()
}

// GetAllAwaitingDispatch loads every order that is ready for pickup and still
// waiting for a courier assignment. The recovery sweep feeds on this.
func (r *GormOrderRepository) GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("dispatch_pending = ? AND status = ?", true, order.ReadyForPickup.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, fmt.Errorf("select orders awaiting dispatch: %w", err)
	}

	aggregates := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}
