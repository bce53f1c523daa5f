// Package kernel provides core domain primitives shared by the fulfillment model.
//
// The package includes:
//   - ID: a positive integer identifier for orders, items, users, products and drivers
//   - Money: a non-negative decimal amount with currency-unit precision (2 fractional digits)
//
// Both are immutable values and safe for concurrent use.
package kernel
