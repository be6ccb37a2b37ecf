// Package delivery contains the Delivery aggregate owned by the delivery ledger.
//
// A Delivery is one courier's assignment to fulfil one order. Its lifecycle is an
// explicit enum rather than an on/off flag:
//
//	Assigned ─> PickedUp ─> Delivered
//	    │           │
//	    └───────────┴──> Cancelled
//
// Assigned and PickedUp deliveries are "active". Deactivation moves an active delivery
// to Cancelled and is idempotent on inactive ones.
package delivery
