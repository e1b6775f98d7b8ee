// Package catalog holds the read-only views of the supplier catalog that the
// fulfillment core consumes: products with stock and ordering bounds, and the
// delivery terms a supplier publishes. The catalog itself is an external
// collaborator; these types only carry validated snapshots of its answers.
package catalog
