// Package kernel contains the shared value objects of the fulfillment domain:
// UUID identifiers, fixed-point Money, order line items, and the delivery
// urgency tiers. All types are immutable and must be created through their
// constructor functions; zero values fail Validate.
package kernel
