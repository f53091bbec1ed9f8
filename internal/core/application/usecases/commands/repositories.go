// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"tourops/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DepartureRepoFactory provides access to the departure repository within a transaction.
	DepartureRepoFactory interface {
		DepartureRepository() ports.DepartureRepository
	}

	// ReservationRepoFactory provides access to the reservation repository within a transaction.
	ReservationRepoFactory interface {
		ReservationRepository() ports.ReservationRepository
	}

	// DepartureUoW manages transactions for departure-only operations.
	// Used when commands only modify departure aggregates.
	DepartureUoW interface {
		TxManager
		DepartureRepoFactory
	}

	// DepartureUoWFactory creates new departure unit of work instances.
	DepartureUoWFactory interface {
		Create() DepartureUoW
	}

	// ReservationUoW manages transactions for reservation-only operations.
	// Used when commands only modify reservation aggregates.
	ReservationUoW interface {
		TxManager
		ReservationRepoFactory
	}

	// ReservationUoWFactory creates new reservation unit of work instances.
	ReservationUoWFactory interface {
		Create() ReservationUoW
	}

	// BookingUoW manages transactions spanning departure and reservation
	// aggregates. Every admission-checked booking path runs under it so the
	// departure row lock, the occupancy read, and the reservation write
	// commit or roll back together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   dep, err := uow.DepartureRepository().GetForAdmission(ctx, departureID)
	//   occupancy, err := uow.ReservationRepository().SumActivePassengers(ctx, departureID)
	//   // ... decide and persist
	//
	//   err = uow.Commit(ctx)
	BookingUoW interface {
		TxManager
		DepartureRepoFactory
		ReservationRepoFactory
	}

	// BookingUoWFactory creates new unit of work instances for booking operations.
	BookingUoWFactory interface {
		Create() BookingUoW
	}
)
