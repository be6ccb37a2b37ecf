// Package services provides domain services that span the order and outbox
// aggregates.
//
// The package includes:
//   - SideEffectPlanner: decides which outbox messages an order change produces
package services
