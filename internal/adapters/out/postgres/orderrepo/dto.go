// Package orderrepo persists the order aggregate in Postgres via gorm.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// ItemDTO is one frozen order line inside the items JSONB column.
type ItemDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// ItemsDTO stores the order lines as a single JSONB document. The lines are
// immutable after checkout, so a document beats a child table here.
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

// OrderDTO is the database representation of the order aggregate. Statuses
// are stored under their wire names so raw read-side SQL stays legible.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid"`
	BuyerID    uuid.UUID `gorm:"type:uuid;not null"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null"`

	Status        string `gorm:"not null"`
	PaymentStatus string `gorm:"not null"`
	PaymentMethod string `gorm:"not null"`

	Items ItemsDTO `gorm:"type:jsonb;not null"`

	Subtotal         int64  `gorm:"not null"`
	DeliveryFee      int64  `gorm:"not null"`
	UrgencySurcharge int64  `gorm:"not null"`
	Total            int64  `gorm:"not null"`
	Currency         string `gorm:"not null"`

	DeliveryAddress string    `gorm:"not null"`
	ContactName     string    `gorm:"not null"`
	ContactPhone    string    `gorm:"not null"`
	DeliveryDate    time.Time `gorm:"not null"`
	TimeSlot        string
	Urgency         string `gorm:"not null"`
	Instructions    string

	InvoiceID           *uuid.UUID `gorm:"type:uuid"`
	TrackingID          *string
	DispatchRequestedAt *time.Time
	DispatchPending     bool `gorm:"not null"`
	DispatchAttempts    int  `gorm:"not null"`

	CancelReason   string
	RefundEligible bool `gorm:"not null"`

	Version   int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName returns the database table for orders.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := make(ItemsDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
		})
	}

	pricing := aggregate.Pricing()
	delivery := aggregate.Delivery()

	dto := OrderDTO{
		ID:         aggregate.ID().Bytes(),
		BuyerID:    aggregate.BuyerID().Bytes(),
		SupplierID: aggregate.SupplierID().Bytes(),

		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.Payment().Status().String(),
		PaymentMethod: aggregate.Payment().Method(),

		Items: items,

		Subtotal:         pricing.Subtotal().Amount(),
		DeliveryFee:      pricing.DeliveryFee().Amount(),
		UrgencySurcharge: pricing.UrgencySurcharge().Amount(),
		Total:            pricing.Total().Amount(),
		Currency:         pricing.Total().Currency().String(),

		DeliveryAddress: delivery.Address(),
		ContactName:     delivery.ContactName(),
		ContactPhone:    delivery.ContactPhone(),
		DeliveryDate:    delivery.Date(),
		TimeSlot:        delivery.TimeSlot(),
		Urgency:         delivery.Urgency().String(),
		Instructions:    delivery.Instructions(),

		DispatchPending:  aggregate.IsDispatchPending(),
		DispatchAttempts: aggregate.DispatchAttempts(),

		CancelReason:   aggregate.CancelReason(),
		RefundEligible: aggregate.IsRefundEligible(),

		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}

	if invoiceID := aggregate.InvoiceID(); invoiceID != nil {
		id := invoiceID.Bytes()
		dto.InvoiceID = &id
	}
	if dispatch := aggregate.Dispatch(); dispatch != nil {
		trackingID := dispatch.TrackingID()
		requestedAt := dispatch.RequestedAt()
		dto.TrackingID = &trackingID
		dto.DispatchRequestedAt = &requestedAt
	}

	return dto
}

func (dto OrderDTO) toDomain() (*order.Order, error) {
	unit, err := currency.ParseISO(dto.Currency)
	if err != nil {
		return nil, fmt.Errorf("parse order currency %q: %w", dto.Currency, err)
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	urgency, err := kernel.UrgencyFromString(dto.Urgency)
	if err != nil {
		return nil, err
	}
	delivery, err := order.NewDelivery(dto.DeliveryAddress, dto.ContactName,
		dto.ContactPhone, dto.DeliveryDate, dto.TimeSlot, urgency, dto.Instructions)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	payment, err := order.NewPayment(paymentStatus, dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var invoiceID *kernel.UUID
	if dto.InvoiceID != nil {
		parsed, err := kernel.UUIDFromBytes(dto.InvoiceID[:])
		if err != nil {
			return nil, err
		}
		invoiceID = &parsed
	}

	var dispatch *order.DispatchRef
	if dto.TrackingID != nil && dto.DispatchRequestedAt != nil {
		ref, err := order.NewDispatchRef(*dto.TrackingID, *dto.DispatchRequestedAt)
		if err != nil {
			return nil, err
		}
		dispatch = &ref
	}

	return order.RestoreOrder(id, buyerID, supplierID, items, pricing, delivery,
		status, payment, invoiceID, dispatch, dto.DispatchPending,
		dto.DispatchAttempts, dto.CancelReason, dto.RefundEligible,
		dto.Version, dto.CreatedAt, dto.UpdatedAt)
}

func restorePricing(dto OrderDTO, unit currency.Unit) (order.Pricing, error) {
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
