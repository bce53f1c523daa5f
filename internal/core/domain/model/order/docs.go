// Package order provides the Order aggregate root and its owned line items.
//
// The package includes:
//   - Order: the aggregate root holding delivery, payment and address data
//   - Item: a line item exclusively owned by one Order, priced once at write time
//   - Status, PaymentMethod, PaymentStatus: the enumerations of the two independent axes
//   - TransitionPolicy: which status changes are allowed (permissive by default)
//   - TotalPolicy: whether totalAmount must match the sum of item totals
//
// Key business rules:
//   - An order is created with at least one item and never loses its last item
//   - Item totalPrice = quantity × unitPrice, computed once and stored
//   - totalAmount is declared by the caller and not recomputed from items
//   - Entering DELIVERED stamps actualDeliveryTime with the server clock
//   - status and paymentStatus are independent; any combination is representable
package order
