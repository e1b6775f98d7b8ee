// Package invoicerepo persists invoices and the per-supplier invoice number
// sequence in Postgres via gorm.
package invoicerepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// ItemDTO is one invoice line inside the items JSONB column.
type ItemDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// ItemsDTO stores the invoice lines as a single JSONB document.
type ItemsDTO []ItemDTO

// Value implements driver.Valuer, serializing the lines to JSON.
func (i ItemsDTO) Value() (driver.Value, error) {
	return json.Marshal(i)
}

// Scan implements sql.Scanner, deserializing the JSONB column.
func (i *ItemsDTO) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return fmt.Errorf("cannot scan %T into ItemsDTO", value)
	}
}

// InvoiceDTO is the database representation of the invoice aggregate.
type InvoiceDTO struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BuyerID    uuid.UUID `gorm:"type:uuid;not null"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null"`

	Number int `gorm:"not null"`

	Items ItemsDTO `gorm:"type:jsonb;not null"`

	Subtotal         int64  `gorm:"not null"`
	DeliveryFee      int64  `gorm:"not null"`
	UrgencySurcharge int64  `gorm:"not null"`
	Total            int64  `gorm:"not null"`
	Currency         string `gorm:"not null"`

	GeneratedAt time.Time `gorm:"not null"`
	EmailSent   bool      `gorm:"not null"`
	SendCount   int       `gorm:"not null"`
}

// TableName returns the database table for invoices.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// SequenceDTO is one row of the per-supplier invoice number sequence. The
// next number is claimed with an atomic upsert inside the caller's
// transaction, so a rollback releases the claimed number.
type SequenceDTO struct {
	SupplierID uuid.UUID `gorm:"primaryKey;type:uuid"`
	Next       int       `gorm:"not null"`
}

// TableName returns the database table for invoice sequences.
func (SequenceDTO) TableName() string {
	return "invoice_sequences"
}

func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	items := make(ItemsDTO, 0, len(inv.Items()))
	for _, item := range inv.Items() {
		items = append(items, ItemDTO{
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
		})
	}

	pricing := inv.Pricing()

	return InvoiceDTO{
		ID:         inv.ID().Bytes(),
		OrderID:    inv.OrderID().Bytes(),
		BuyerID:    inv.BuyerID().Bytes(),
		SupplierID: inv.SupplierID().Bytes(),

		Number: inv.Number(),

		Items: items,

		Subtotal:         pricing.Subtotal().Amount(),
		DeliveryFee:      pricing.DeliveryFee().Amount(),
		UrgencySurcharge: pricing.UrgencySurcharge().Amount(),
		Total:            pricing.Total().Amount(),
		Currency:         pricing.Total().Currency().String(),

		GeneratedAt: inv.GeneratedAt(),
		EmailSent:   inv.IsEmailSent(),
		SendCount:   inv.SendCount(),
	}
}

func (dto InvoiceDTO) toDomain() (*invoice.Invoice, error) {
	unit, err := currency.ParseISO(dto.Currency)
	if err != nil {
		return nil, fmt.Errorf("parse invoice currency %q: %w", dto.Currency, err)
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	items := make([]kernel.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, err := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if err != nil {
			return nil, err
		}
		unitPrice, err := kernel.NewMoney(itemDTO.UnitPrice, unit)
		if err != nil {
			return nil, err
		}
		item, err := kernel.NewLineItem(productID, itemDTO.Name, unitPrice, itemDTO.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	pricing, err := restorePricing(dto, unit)
	if err != nil {
		return nil, err
	}

	return invoice.RestoreInvoice(id, orderID, buyerID, supplierID, dto.Number,
		items, pricing, dto.GeneratedAt, dto.EmailSent, dto.SendCount)
}

func restorePricing(dto InvoiceDTO, unit currency.Unit) (order.Pricing, error) {
	subtotal, err := kernel.NewMoney(dto.Subtotal, unit)
	if err != nil {
		return order.Pricing{}, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee, unit)
	if err != nil {
		return order.Pricing{}, err
	}
	surcharge, err := kernel.NewMoney(dto.UrgencySurcharge, unit)
	if err != nil {
		return order.Pricing{}, err
	}
	total, err := kernel.NewMoney(dto.Total, unit)
	if err != nil {
		return order.Pricing{}, err
	}
	return order.NewPricing(subtotal, deliveryFee, surcharge, total)
}
