// Package queries contains read operations of the order fulfillment core.
// Queries never open a write transaction. The listing facade is forgiving:
// malformed paging or filter input falls back to defaults instead of failing.
package queries
