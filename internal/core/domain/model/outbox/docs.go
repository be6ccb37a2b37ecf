// Package outbox models the side effects of an order change as durable messages.
//
// A Message is written in the same transaction as the order change that caused it,
// so a committed order always has its side effects recorded. Messages are then
// executed by the application (inline for delivery kinds, by background jobs for
// everything else) and their outcome is written back:
//
//	Pending ─> Done
//	   │
//	   └─> Failed ─(Rearm)─> Pending
//
// A Pending message that failed carries the error and the time of its next attempt.
package outbox
