package cmd

import (
	"log/slog"

	"tourops/internal/adapters/out/notify"
	"tourops/internal/adapters/out/postgres"
	"tourops/internal/adapters/out/postgres/agencydir"
	"tourops/internal/adapters/out/postgres/catalogrepo"
	"tourops/internal/core/application/usecases/commands"
	"tourops/internal/core/application/usecases/queries"
	"tourops/internal/core/ports"
	"tourops/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    ports.ServiceCatalog
	agencies   ports.AgencyDirectory
	publisher  ports.ChangePublisher
	notifier   ports.CapacityNotifier
	clock      clock.Clock
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalogrepo.NewGormServiceCatalog(gormDB),
		agencies:   agencydir.NewGormAgencyDirectory(gormDB),
		publisher:  notify.NewLogChangePublisher(logger),
		notifier:   notify.NewLogCapacityNotifier(logger),
		clock:      clock.NewSystem(),
	}
}

func (c *CompositionRoot) CreateCreateReservationCommandHandler() commands.CreateReservationCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReservationCommandHandler(f, c.catalog, c.agencies, c.publisher, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCancelReservationCommandHandler() commands.CancelReservationCommandHandler {
	var f commands.ReservationUoWFactory = FuncReservationUoWFactory(func() commands.ReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelReservationCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateChangePassengerCountsCommandHandler() commands.ChangePassengerCountsCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangePassengerCountsCommandHandler(f, c.catalog, c.agencies, c.publisher, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRecordCollectionCommandHandler() commands.RecordCollectionCommandHandler {
	var f commands.ReservationUoWFactory = FuncReservationUoWFactory(func() commands.ReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordCollectionCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateScheduleDepartureCommandHandler() commands.ScheduleDepartureCommandHandler {
	var f commands.DepartureUoWFactory = FuncDepartureUoWFactory(func() commands.DepartureUoW {
		return c.uowFactory.Create()
	})
	return commands.NewScheduleDepartureCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateChangeDepartureStatusCommandHandler() commands.ChangeDepartureStatusCommandHandler {
	var f commands.DepartureUoWFactory = FuncDepartureUoWFactory(func() commands.DepartureUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeDepartureStatusCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateDeactivateDepartureCommandHandler() commands.DeactivateDepartureCommandHandler {
	var f commands.DepartureUoWFactory = FuncDepartureUoWFactory(func() commands.DepartureUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivateDepartureCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateTransitionDueDeparturesCommandHandler() commands.TransitionDueDeparturesCommandHandler {
	var f commands.DepartureUoWFactory = FuncDepartureUoWFactory(func() commands.DepartureUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionDueDeparturesCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateGetAgencyBalancesQueryHandler() queries.GetAgencyBalancesQueryHandler {
	return queries.NewGetAgencyBalancesQueryHandler(c.gormDB, c.agencies)
}

func (c *CompositionRoot) CreateGetDepartureOccupancyQueryHandler() queries.GetDepartureOccupancyQueryHandler {
	return queries.NewGetDepartureOccupancyQueryHandler(c.gormDB)
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncReservationUoWFactory func() commands.ReservationUoW

func (f FuncReservationUoWFactory) Create() commands.ReservationUoW {
	return f()
}

type FuncDepartureUoWFactory func() commands.DepartureUoW

func (f FuncDepartureUoWFactory) Create() commands.DepartureUoW {
	return f()
}
