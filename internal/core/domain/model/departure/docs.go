// Package departure contains the Departure aggregate: one scheduled
// occurrence of a fixed route or a tour on a specific date and time.
//
// Route departures are bound to a vehicle with a fixed seat capacity and are
// subject to admission control; tour departures have no capacity limit.
// Departures move through a lifecycle state machine (Scheduled, Started,
// Finished, Cancelled) and are soft-deactivated rather than deleted.
//
// The package also provides CapacitySnapshot, an explicit pure view over a
// (capacity, occupancy) pair that replaces derived-on-read record accessors
// with testable functions.
package departure
