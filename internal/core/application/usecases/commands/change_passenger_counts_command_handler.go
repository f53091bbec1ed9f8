package commands

import (
	"context"

	"tourops/internal/core/domain/model/reservation"
	"tourops/internal/core/domain/services"
	"tourops/internal/core/ports"
	"tourops/internal/pkg/clock"
)

// ChangePassengerCountsCommandHandler changes the passenger mix of an
// existing reservation.
//
// Only a net increase needs admission-checking: the reservation's current
// passengers already hold their seats, so the headroom required is the
// difference, not the new total. Decreases always succeed. When the charge
// was not manually overridden it is recomputed for the new mix; an
// overridden charge is left untouched. The cost basis is always recomputed.
type ChangePassengerCountsCommandHandler struct {
	uowFactory BookingUoWFactory
	catalog    ports.ServiceCatalog
	agencies   ports.AgencyDirectory
	publisher  ports.ChangePublisher
	notifier   ports.CapacityNotifier
	clock      clock.Clock
	allocator  services.CapacityAllocator
	pricing    services.PricingService
}

// NewChangePassengerCountsCommandHandler creates a handler for passenger count changes.
func NewChangePassengerCountsCommandHandler(
	uowFactory BookingUoWFactory,
	catalog ports.ServiceCatalog,
	agencies ports.AgencyDirectory,
	publisher ports.ChangePublisher,
	notifier ports.CapacityNotifier,
	clk clock.Clock,
) ChangePassengerCountsCommandHandler {
	return ChangePassengerCountsCommandHandler{
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

// Handle processes the passenger count change.
// A rejected increase is returned as *services.CapacityExceededError with
// the free-seat count; nothing is persisted in that case.
func (h ChangePassengerCountsCommandHandler) Handle(ctx context.Context, cmd ChangePassengerCountsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	departureRepo := uow.DepartureRepository()
	reservationRepo := uow.ReservationRepository()

	booking, err := reservationRepo.Get(ctx, cmd.ReservationID())
	if err != nil {
		return err
	}

	oldAdults, oldChildren := booking.Adults(), booking.Children()
	increase := (cmd.Adults() + cmd.Children()) - booking.PassengerCount()

	var warned bool
	var warnOccupancy, warnCapacity int
	if increase > 0 {
		dep, admitErr := departureRepo.GetForAdmission(ctx, booking.DepartureID())
		if admitErr != nil {
			return admitErr
		}

		occupancy, sumErr := reservationRepo.SumActivePassengers(ctx, booking.DepartureID())
		if sumErr != nil {
			return sumErr
		}

		decision, admitErr := h.allocator.Admit(dep, occupancy, increase, 0)
		if admitErr != nil {
			return admitErr
		}
		if !decision.Admitted {
			return &services.CapacityExceededError{
				Requested:      increase,
				RemainingSeats: decision.RemainingSeats,
			}
		}
		if decision.CapacityWarning {
			warned = true
			warnOccupancy = decision.OccupancyAfter
			warnCapacity = dep.VehicleCapacity()
		}
	}

	if err = booking.ChangePassengerCounts(cmd.Adults(), cmd.Children()); err != nil {
		return err
	}

	if err = h.reprice(ctx, booking, cmd); err != nil {
		return err
	}

	if err = reservationRepo.Update(ctx, booking); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.ChangeEvent{
		EntityType: "reservation",
		EntityID:   booking.ID(),
		Action:     "passengers_changed",
		OldValues:  map[string]any{"adults": oldAdults, "children": oldChildren},
		NewValues:  map[string]any{"adults": cmd.Adults(), "children": cmd.Children()},
		ActorID:    cmd.ActorID(),
		OccurredAt: h.clock.Now(),
	})

	if warned {
		h.notifier.NotifyCapacityWarning(ctx, booking.DepartureID(), warnOccupancy, warnCapacity)
	}

	return nil
}

// reprice recomputes the charge for the new passenger mix unless it was
// manually overridden. The cost basis is recomputed unconditionally.
func (h ChangePassengerCountsCommandHandler) reprice(
	ctx context.Context,
	booking *reservation.Reservation,
	cmd ChangePassengerCountsCommand,
) error {
	entry, err := h.catalog.GetServiceEntry(ctx, booking.ServiceID())
	if err != nil {
		return err
	}

	if !booking.ChargeOverridden() {
		discountEligible, eligErr := h.agencies.IsDiscountEligible(ctx, booking.OriginAgency())
		if eligErr != nil {
			return eligErr
		}

		charge, priceErr := h.pricing.Price(entry, cmd.Adults(), cmd.Children(), discountEligible)
		if priceErr != nil {
			return priceErr
		}
		if err = booking.ApplyComputedCharge(charge); err != nil {
			return err
		}
	}

	costBasis, err := h.pricing.Price(entry, cmd.Adults(), cmd.Children(), true)
	if err != nil {
		return err
	}
	return booking.SetCostBasis(costBasis)
}
