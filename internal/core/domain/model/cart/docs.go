// Package cart implements the mutable staging area a buyer fills for one
// supplier before checkout. The cart enforces per-product stock and
// minimum-quantity bounds on every mutation and keeps its subtotal eagerly
// recomputed, so readers always observe a consistent total. Carts never hold
// delivery-time choices; those arrive only with the checkout request.
package cart
