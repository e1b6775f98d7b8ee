package invoice

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// RenderArtifact renders the plain-text billing document from the invoice
// snapshot. The artifact is deterministic for a given invoice and is never
// stored: callers re-render it on every download.
func (i *Invoice) RenderArtifact() (string, error) {
	if err := i.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INVOICE %s\n", i.DisplayNumber())
	fmt.Fprintf(&b, "Order:     %s\n", i.orderID)
	fmt.Fprintf(&b, "Supplier:  %s\n", i.supplierID)
	fmt.Fprintf(&b, "Buyer:     %s\n", i.buyerID)
	fmt.Fprintf(&b, "Generated: %s\n", i.generatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString("\n")

	for _, item := range i.items {
		fmt.Fprintf(&b, "%-40s %4d x %10s = %12s\n",
			item.Name(), item.Quantity(), displayAmount(item.UnitPrice()), displayAmount(item.LineTotal()))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%-20s %12s\n", "Subtotal:", displayAmount(i.pricing.Subtotal()))
	fmt.Fprintf(&b, "%-20s %12s\n", "Delivery fee:", displayAmount(i.pricing.DeliveryFee()))
	fmt.Fprintf(&b, "%-20s %12s\n", "Urgency surcharge:", displayAmount(i.pricing.UrgencySurcharge()))
	fmt.Fprintf(&b, "%-20s %12s\n", "TOTAL:", displayAmount(i.pricing.Total()))

	return b.String(), nil
}

// displayAmount formats minor units as a major-unit decimal with the currency
// code, e.g. 9800 EUR cents -> "98.00 EUR". Display formatting only; all
// arithmetic stays in integer minor units.
func displayAmount(m kernel.Money) string {
	d := decimal.New(m.Amount(), -int32(m.MinorUnitScale()))
	return fmt.Sprintf("%s %s", d.StringFixed(int32(m.MinorUnitScale())), m.Currency())
}
