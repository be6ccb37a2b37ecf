// Package order provides the Order aggregate and its status state machine.
//
// The package includes:
//   - Order: the aggregate root owning customer, restaurant, price, address and item references
//   - Status: a closed enumeration of lifecycle states with an explicit transition table
//   - TransitionPolicy: whether stages may be skipped (permissive) or must be walked in order (strict)
//
// Key business rules:
//   - Orders are created in Pending status with at least one item reference
//   - Items are immutable after creation
//   - Completed and Cancelled are terminal; a terminal order accepts no further changes
//   - Cancelled is reachable from every non-terminal status
//   - Total price is never negative
package order
