// Package invoice implements the Invoice aggregate and its printable
// artifact.
//
// An invoice is generated at most once per order, only after payment has
// completed, and carries a supplier-scoped monotonically increasing number.
// Its content is a snapshot of the order's frozen items and pricing taken at
// generation time; the artifact is re-rendered from that snapshot on every
// download, never stored.
package invoice
