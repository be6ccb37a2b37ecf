// Package kernel provides core domain primitives shared by the order, delivery and
// outbox models.
//
// The package includes:
//   - ID: a positive integer surrogate key referencing orders, customers, restaurants,
//     items, couriers and deliveries
//   - UUID: identifiers for outbox messages
//   - Money: a non-negative decimal amount
//   - Address: an optional delivery address limited to 255 characters
//
// All primitives are immutable values validated at construction.
package kernel
