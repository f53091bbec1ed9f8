package commands

import (
	"context"

	"tourops/internal/core/domain/model/reservation"
	"tourops/internal/core/domain/services"
	"tourops/internal/core/ports"
	"tourops/internal/pkg/clock"
)

// CreateReservationCommandHandler orchestrates the booking sequence: catalog
// lookup, capacity admission, pricing, and atomic persistence.
//
// The admission check and the reservation insert run in one transaction that
// holds the departure's row lock, so concurrent bookings on the same
// departure serialize and can never both claim the same free seats. The
// audit event and any capacity warning are emitted only after the commit.
//
// Example:
//
//	handler := NewCreateReservationCommandHandler(uowFactory, catalog, agencies, publisher, notifier, clk)
//	err := handler.Handle(ctx, cmd)
//	var capacityErr *services.CapacityExceededError
//	switch {
//	case errors.As(err, &capacityErr):
//	    log.Printf("full: %d seats remaining", capacityErr.RemainingSeats)
//	case err != nil:
//	    log.Printf("booking failed: %v", err)
//	}
type CreateReservationCommandHandler struct {
	uowFactory BookingUoWFactory
	catalog    ports.ServiceCatalog
	agencies   ports.AgencyDirectory
	publisher  ports.ChangePublisher
	notifier   ports.CapacityNotifier
	clock      clock.Clock
	allocator  services.CapacityAllocator
	pricing    services.PricingService
}

// NewCreateReservationCommandHandler creates a handler for booking operations.
func NewCreateReservationCommandHandler(
	uowFactory BookingUoWFactory,
	catalog ports.ServiceCatalog,
	agencies ports.AgencyDirectory,
	publisher ports.ChangePublisher,
	notifier ports.CapacityNotifier,
	clk clock.Clock,
) CreateReservationCommandHandler {
	return CreateReservationCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		agencies:   agencies,
		publisher:  publisher,
		notifier:   notifier,
		clock:      clk,
		allocator:  services.NewCapacityAllocator(),
		pricing:    services.NewPricingService(),
	}
}

// Handle processes the booking command.
//
// All lookups and validation run before the transaction begins, so a
// rejected request never leaves partial state. Inside the transaction the
// departure row is locked, the active occupancy is summed, the admission
// decision is made, and the reservation persisted. A capacity rejection is
// returned as *services.CapacityExceededError carrying the free-seat count.
func (h CreateReservationCommandHandler) Handle(ctx context.Context, cmd CreateReservationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	entry, err := h.catalog.GetServiceEntry(ctx, cmd.ServiceID())
	if err != nil {
		return err
	}

	discountEligible, err := h.agencies.IsDiscountEligible(ctx, cmd.OriginAgency())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	departureRepo := uow.DepartureRepository()
	reservationRepo := uow.ReservationRepository()

	dep, err := departureRepo.GetForAdmission(ctx, cmd.DepartureID())
	if err != nil {
		return err
	}

	occupancy, err := reservationRepo.SumActivePassengers(ctx, cmd.DepartureID())
	if err != nil {
		return err
	}

	decision, err := h.allocator.Admit(dep, occupancy, cmd.Adults(), cmd.Children())
	if err != nil {
		return err
	}
	if !decision.Admitted {
		return &services.CapacityExceededError{
			Requested:      cmd.Adults() + cmd.Children(),
			RemainingSeats: decision.RemainingSeats,
		}
	}

	booking, err := reservation.NewReservation(
		cmd.ReservationID(),
		cmd.DepartureID(),
		cmd.ServiceID(),
		cmd.Adults(), cmd.Children(),
		cmd.ClientName(),
		cmd.ClientDocument(),
		cmd.OriginAgency(),
		cmd.TransferredTo(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	if override := cmd.PriceOverride(); override != nil {
		if err = booking.OverrideCharge(*override); err != nil {
			return err
		}
	} else {
		charge, priceErr := h.pricing.Price(entry, cmd.Adults(), cmd.Children(), discountEligible)
		if priceErr != nil {
			return priceErr
		}
		if err = booking.ApplyComputedCharge(charge); err != nil {
			return err
		}
	}

	// Cost basis is always the negotiated net price, untouched by overrides,
	// so settlement stays anchored to the catalog.
	costBasis, err := h.pricing.Price(entry, cmd.Adults(), cmd.Children(), true)
	if err != nil {
		return err
	}
	if err = booking.SetCostBasis(costBasis); err != nil {
		return err
	}

	if err = reservationRepo.Add(ctx, booking); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.ChangeEvent{
		EntityType: "reservation",
		EntityID:   booking.ID(),
		Action:     "created",
		NewValues: map[string]any{
			"departureID": booking.DepartureID().String(),
			"serviceID":   booking.ServiceID().String(),
			"adults":      booking.Adults(),
			"children":    booking.Children(),
			"charge":      booking.Charge().String(),
			"costBasis":   booking.CostBasis().String(),
		},
		ActorID:    cmd.ActorID(),
		OccurredAt: h.clock.Now(),
	})

	if decision.CapacityWarning {
		h.notifier.NotifyCapacityWarning(ctx, dep.ID(), decision.OccupancyAfter, dep.VehicleCapacity())
	}

	return nil
}
