package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery was not created
// through NewDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery")

// Delivery holds the destination and handling details the buyer chose at
// checkout. Like the rest of the order content, it is frozen once the order
// is placed.
type Delivery struct {
	address      string
	contactName  string
	contactPhone string
	date         time.Time
	timeSlot     string
	urgency      kernel.Urgency
	instructions string

	isConstructed bool
}

// NewDelivery creates a delivery specification. Address, contact name, phone
// and date are required; the time slot and instructions are optional.
func NewDelivery(address, contactName, contactPhone string, date time.Time,
	timeSlot string, urgency kernel.Urgency, instructions string) (Delivery, error) {
	if address == "" {
		return Delivery{}, errs.NewValueIsRequiredError("address")
	}
	if contactName == "" {
		return Delivery{}, errs.NewValueIsRequiredError("contactName")
	}
	if contactPhone == "" {
		return Delivery{}, errs.NewValueIsRequiredError("contactPhone")
	}
	if date.IsZero() {
		return Delivery{}, errs.NewValueIsRequiredError("date")
	}
	if err := urgency.Validate(); err != nil {
		return Delivery{}, err
	}

	return Delivery{
		address:       address,
		contactName:   contactName,
		contactPhone:  contactPhone,
		date:          date,
		timeSlot:      timeSlot,
		urgency:       urgency,
		instructions:  instructions,
		isConstructed: true,
	}, nil
}

// Address returns the destination address.
func (d Delivery) Address() string {
	return d.address
}

// ContactName returns the recipient contact name.
func (d Delivery) ContactName() string {
	return d.contactName
}

// ContactPhone returns the recipient contact phone number.
func (d Delivery) ContactPhone() string {
	return d.contactPhone
}

// Date returns the requested delivery date.
func (d Delivery) Date() time.Time {
	return d.date
}

// TimeSlot returns the requested delivery window, empty when unspecified.
func (d Delivery) TimeSlot() string {
	return d.timeSlot
}

// Urgency returns the handling tier.
func (d Delivery) Urgency() kernel.Urgency {
	return d.urgency
}

// Instructions returns free-form delivery instructions, empty when absent.
func (d Delivery) Instructions() string {
	return d.instructions
}

// Validate ensures the delivery was created via NewDelivery.
func (d Delivery) Validate() error {
	if !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}
