package invoicerepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.InvoiceRepository = &GormInvoiceRepository{}

// GormInvoiceRepository implements ports.InvoiceRepository on top of gorm.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates an invoice repository using the given
// connection, which may be a transaction.
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Add inserts a new invoice.
func (r *GormInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inv)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	return nil
}

// Update persists the invoice's mutable email state.
func (r *GormInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inv)
	result := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"email_sent": dto.EmailSent,
			"send_count": dto.SendCount,
		})
	if result.Error != nil {
		return fmt.Errorf("update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invoice", inv.ID().String())
	}

	return nil
}

// Get loads one invoice by ID.
func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	var dto InvoiceDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("invoice", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("select invoice: %w", err)
	}

	return dto.toDomain()
}

// GetByOrder loads the invoice attached to an order, if one exists.
func (r *GormInvoiceRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	var dto InvoiceDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("invoice for order", orderID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("select invoice by order: %w", err)
	}

	return dto.toDomain()
}

// NextNumber claims the next invoice number of the supplier's sequence with
// a single atomic upsert. Run it inside the transaction that inserts the
// invoice, so a rollback releases the claimed number.
func (r *GormInvoiceRepository) NextNumber(ctx context.Context, supplierID kernel.UUID) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO invoice_sequences (supplier_id, next)
		VALUES (?, 1)
		ON CONFLICT (supplier_id)
		DO UPDATE SET next = invoice_sequences.next + 1
		RETURNING next`, supplierID.Bytes()).Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("claim invoice number: %w", err)
	}

	return next, nil
}
