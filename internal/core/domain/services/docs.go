// Package services contains the stateless domain services of the booking
// core: capacity admission decisions, pricing computation, and settlement
// classification.
//
// All services here are pure: they operate on snapshots and value objects,
// perform no I/O, and are safe to call concurrently. Transactional
// coordination (row locks, persistence) is the responsibility of the
// application layer.
package services
