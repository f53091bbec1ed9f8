// Package reservation contains the Reservation aggregate: a booking placed
// against exactly one departure.
//
// A reservation carries the passenger mix, the commercial channel (origin
// agency, transferred-to agency), the charge owed by the passenger, and the
// figures settlement aggregates over (cost basis, collected amount). It is
// capacity-counted only while active and only when its departure is a
// capacity-limited route.
//
// Charges are computed by the pricing engine and applied to the aggregate by
// the lifecycle coordinator; an explicit override supplied at creation is
// sticky and is never replaced by a later recomputation.
package reservation
