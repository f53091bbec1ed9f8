// Package catalog contains the read-side model of the service catalog: the
// sellable products referenced by reservations. The catalog itself (CRUD,
// ownership) lives outside the core; this package only defines the
// immutable-per-query ServiceEntry consumed by pricing.
package catalog
