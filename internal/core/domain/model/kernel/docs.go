// Package kernel contains the shared value objects of the booking domain:
// UUID identifiers, Money amounts, and DateWindow settlement periods.
//
// All types in this package are immutable value objects. They are safe for
// concurrent use and compare by value. Zero values are invalid where a
// Validate method exists; instances must be created through the provided
// constructor functions.
package kernel
