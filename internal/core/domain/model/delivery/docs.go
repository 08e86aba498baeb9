// Package delivery contains the delivery aggregate and its lifecycle rules.
//
// A Delivery is the aggregate root owning an ordered route of legs (each
// with its own address) and a list of cargo items. The three entities are
// one consistency unit: they are created, read, and deleted together, and
// the route and items are immutable once the trajectory is set.
//
// The Status type implements the dispatch state machine:
//
//	payment_pending ──> pending ──> accepted ──> completed
//	        │              │  ^         │
//	        │              │  └─────────┤ (release)
//	        └──────────────┴────────────┴──> cancelled
//
// completed and cancelled are terminal. Transitions outside the table
// fail with InvalidTransitionError and leave the aggregate untouched.
package delivery
