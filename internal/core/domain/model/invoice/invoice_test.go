package invoice_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, currency.EUR)
	require.NoError(t, err)
	return m
}

func testItems(t *testing.T) []kernel.LineItem {
	t.Helper()
	li, err := kernel.NewLineItem(kernel.NewUUID(), "Arabica beans 1kg", money(t, 2500), 3)
	require.NoError(t, err)
	return []kernel.LineItem{li}
}

func testPricing(t *testing.T) order.Pricing {
	t.Helper()
	p, err := order.NewPricing(money(t, 7500), money(t, 800), money(t, 1500), money(t, 9800))
	require.NoError(t, err)
	return p
}

func testInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()

	inv, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), 42, testItems(t), testPricing(t), time.Now())
	require.NoError(t, err)
	return inv
}

func Test_NewInvoice(t *testing.T) {
	inv := testInvoice(t)

	assert.Equal(t, 42, inv.Number())
	assert.Equal(t, "INV-000042", inv.DisplayNumber())
	assert.False(t, inv.IsEmailSent())
	assert.Zero(t, inv.SendCount())
	assert.Len(t, inv.Items(), 1)
}

func Test_NewInvoice_Invalid(t *testing.T) {
	now := time.Now()

	_, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), 0, testItems(t), testPricing(t), now)
	assert.Error(t, err)

	_, err = invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), 1, nil, testPricing(t), now)
	assert.Error(t, err)

	_, err = invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), 1, testItems(t), order.Pricing{}, now)
	assert.Error(t, err)

	_, err = invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), 1, testItems(t), testPricing(t), time.Time{})
	assert.Error(t, err)
}

func Test_Invoice_RecordEmailSent(t *testing.T) {
	inv := testInvoice(t)

	first, err := inv.RecordEmailSent()
	require.NoError(t, err)
	assert.True(t, first)
	assert.True(t, inv.IsEmailSent())
	assert.Equal(t, 1, inv.SendCount())

	first, err = inv.RecordEmailSent()
	require.NoError(t, err)
	assert.False(t, first)
	assert.True(t, inv.IsEmailSent())
	assert.Equal(t, 2, inv.SendCount())
}

func Test_RestoreInvoice(t *testing.T) {
	inv, err := invoice.RestoreInvoice(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), 7, testItems(t), testPricing(t), time.Now(), true, 3)

	require.NoError(t, err)
	assert.True(t, inv.IsEmailSent())
	assert.Equal(t, 3, inv.SendCount())
}

func Test_Invoice_RenderArtifact(t *testing.T) {
	inv := testInvoice(t)

	artifact, err := inv.RenderArtifact()
	require.NoError(t, err)

	assert.Contains(t, artifact, "INVOICE INV-000042")
	assert.Contains(t, artifact, "Arabica beans 1kg")
	assert.Contains(t, artifact, "25.00 EUR")
	assert.Contains(t, artifact, "75.00 EUR")
	assert.Contains(t, artifact, "8.00 EUR")
	assert.Contains(t, artifact, "15.00 EUR")
	assert.Contains(t, artifact, "98.00 EUR")
}

func Test_Invoice_RenderArtifact_Deterministic(t *testing.T) {
	inv := testInvoice(t)

	a, err := inv.RenderArtifact()
	require.NoError(t, err)
	b, err := inv.RenderArtifact()
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func Test_Invoice_NotConstructed(t *testing.T) {
	var inv invoice.Invoice

	_, err := inv.RecordEmailSent()
	assert.ErrorIs(t, err, invoice.ErrInvoiceIsNotConstructed)

	_, err = inv.RenderArtifact()
	assert.ErrorIs(t, err, invoice.ErrInvoiceIsNotConstructed)
}
