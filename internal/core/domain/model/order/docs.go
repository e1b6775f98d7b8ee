// Package order implements the Order aggregate: an immutable-content,
// mutable-status record produced by checking out a cart.
//
// The items and pricing of an order are frozen at checkout time (copy
// semantics, never references into the cart or catalog), so later catalog
// changes cannot alter a placed order. The only mutable parts are the
// lifecycle status, driven exclusively through TransitionTo, the payment
// state, and the weak references to the invoice and dispatch artifacts owned
// by their respective workflows.
//
// Status is a closed state machine:
//
//	pending -> confirmed -> preparing -> ready_for_pickup -> in_transit -> delivered
//	   \___________\___________\____________\-> cancelled
//
// Delivered and cancelled are terminal; an order in transit can no longer be
// cancelled. Orders are never deleted: cancellation is a terminal status.
package order
