// Package services provides domain services that coordinate business rules
// across multiple aggregates.
//
// PricingCalculator is the single place where an order total is computed: it
// combines cart lines with the supplier's delivery terms and the requested
// urgency tier into a frozen price breakdown.
package services
