package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand converts the buyer's cart with a supplier into an order:
// delivery details, urgency tier and payment method chosen at checkout.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	buyerID    kernel.UUID
	supplierID kernel.UUID

	address      string
	contactName  string
	contactPhone string
	deliveryDate time.Time
	timeSlot     string
	urgency      kernel.Urgency
	instructions string

	paymentMethod string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout command. The time slot and
// instructions are optional; everything else is required.
func NewCheckoutCommand(orderID, buyerID, supplierID kernel.UUID,
	address, contactName, contactPhone string, deliveryDate time.Time,
	timeSlot string, urgency kernel.Urgency, instructions, paymentMethod string) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setSupplierID(supplierID),
		cmd.setAddress(address),
		cmd.setContactName(contactName),
		cmd.setContactPhone(contactPhone),
		cmd.setDeliveryDate(deliveryDate),
		cmd.setUrgency(urgency),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	cmd.timeSlot = timeSlot
	cmd.instructions = instructions

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the buyer checking out.
func (c CheckoutCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SupplierID returns the supplier whose cart is checked out.
func (c CheckoutCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// Address returns the delivery address.
func (c CheckoutCommand) Address() string {
	return c.address
}

// ContactName returns the recipient contact name.
func (c CheckoutCommand) ContactName() string {
	return c.contactName
}

// ContactPhone returns the recipient contact phone number.
func (c CheckoutCommand) ContactPhone() string {
	return c.contactPhone
}

// DeliveryDate returns the requested delivery date.
func (c CheckoutCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// TimeSlot returns the requested delivery window, empty when unspecified.
func (c CheckoutCommand) TimeSlot() string {
	return c.timeSlot
}

// Urgency returns the requested handling tier.
func (c CheckoutCommand) Urgency() kernel.Urgency {
	return c.urgency
}

// Instructions returns free-form delivery instructions.
func (c CheckoutCommand) Instructions() string {
	return c.instructions
}

// PaymentMethod returns the payment method the buyer chose.
func (c CheckoutCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("buyerID", err)
	}

	c.buyerID = buyerID
	return nil
}

func (c *CheckoutCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("supplierID", err)
	}

	c.supplierID = supplierID
	return nil
}

func (c *CheckoutCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	c.address = address
	return nil
}

func (c *CheckoutCommand) setContactName(contactName string) error {
	if contactName == "" {
		return errs.NewValueIsRequiredError("contactName")
	}

	c.contactName = contactName
	return nil
}

func (c *CheckoutCommand) setContactPhone(contactPhone string) error {
	if contactPhone == "" {
		return errs.NewValueIsRequiredError("contactPhone")
	}

	c.contactPhone = contactPhone
	return nil
}

func (c *CheckoutCommand) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDate")
	}

	c.deliveryDate = deliveryDate
	return nil
}

func (c *CheckoutCommand) setUrgency(urgency kernel.Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}

	c.urgency = urgency
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}

	c.paymentMethod = paymentMethod
	return nil
}
