package postgres_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	postgres_adapter "tourops/internal/adapters/out/postgres"
	"tourops/internal/adapters/out/postgres/departurerepo"
	"tourops/internal/adapters/out/postgres/reservationrepo"
	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/model/reservation"
	"tourops/internal/core/domain/services"
	"tourops/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&departurerepo.DepartureDTO{}, &reservationrepo.ReservationDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE departures, reservations").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// createTestDeparture creates a scheduled route departure for testing purposes.
func createTestDeparture(capacity int) *departure.Departure {
	dep, _ := departure.NewRouteDeparture(
		kernel.NewUUID(),
		capacity,
		time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
	)
	return dep
}

// createTestReservation creates a valid reservation on the given departure.
func createTestReservation(departureID kernel.UUID, adults, children int) *reservation.Reservation {
	booking, _ := reservation.NewReservation(
		kernel.NewUUID(),
		departureID,
		kernel.NewUUID(),
		adults, children,
		"Test Client",
		"DOC-42",
		nil,
		nil,
		time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC),
	)
	return booking
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.DepartureRepository(), "First instance should provide departure repository")
	suite.NotNil(uow1.ReservationRepository(), "First instance should provide reservation repository")
	suite.NotNil(uow2.DepartureRepository(), "Second instance should provide departure repository")
	suite.NotNil(uow2.ReservationRepository(), "Second instance should provide reservation repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	dep := createTestDeparture(10)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DepartureRepository().Add(ctx, dep)
	suite.Require().NoError(err)

	retrieved, err := uow.DepartureRepository().Get(ctx, dep.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(dep.ID()))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err = newUow.DepartureRepository().Get(ctx, dep.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(dep.ID()))
}

// TestUnitOfWork_BookingWorkflow tests the complete admission workflow involving
// both aggregates and the capacity allocator within a single transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_BookingWorkflow() {
	ctx := context.Background()
	allocator := services.NewCapacityAllocator()
	uow := suite.factory.Create()

	dep := createTestDeparture(10)
	err := uow.DepartureRepository().Add(ctx, dep)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	locked, err := uow.DepartureRepository().GetForAdmission(ctx, dep.ID())
	suite.Require().NoError(err)

	occupancy, err := uow.ReservationRepository().SumActivePassengers(ctx, dep.ID())
	suite.Require().NoError(err)
	suite.Equal(0, occupancy)

	decision, err := allocator.Admit(locked, occupancy, 2, 1)
	suite.Require().NoError(err)
	suite.True(decision.Admitted)

	booking := createTestReservation(dep.ID(), 2, 1)
	err = uow.ReservationRepository().Add(ctx, booking)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	occupancy, err = newUow.ReservationRepository().SumActivePassengers(ctx, dep.ID())
	suite.Require().NoError(err)
	suite.Equal(3, occupancy)

	retrieved, err := newUow.ReservationRepository().Get(ctx, booking.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.DepartureID().IsEqual(dep.ID()))
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across both repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	dep := createTestDeparture(10)
	booking := createTestReservation(dep.ID(), 2, 0)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DepartureRepository().Add(ctx, dep)
	suite.Require().NoError(err)

	err = uow.ReservationRepository().Add(ctx, booking)
	suite.Require().NoError(err)

	_, err = uow.DepartureRepository().Get(ctx, dep.ID())
	suite.Require().NoError(err)

	_, err = uow.ReservationRepository().Get(ctx, booking.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.DepartureRepository().Get(ctx, dep.ID())
	suite.Require().Error(err, "Departure should not exist after rollback")

	_, err = newUow.ReservationRepository().Get(ctx, booking.ID())
	suite.Require().Error(err, "Reservation should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	dep1 := createTestDeparture(10)
	dep2 := createTestDeparture(10)

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.DepartureRepository().Add(ctx, dep1)
	suite.Require().NoError(err)

	err = uow2.DepartureRepository().Add(ctx, dep2)
	suite.Require().NoError(err)

	_, err = uow1.DepartureRepository().Get(ctx, dep1.ID())
	suite.Require().NoError(err, "UOW1 should see dep1")

	_, err = uow1.DepartureRepository().Get(ctx, dep2.ID())
	suite.Require().Error(err, "UOW1 should not see dep2")

	_, err = uow2.DepartureRepository().Get(ctx, dep2.ID())
	suite.Require().NoError(err, "UOW2 should see dep2")

	_, err = uow2.DepartureRepository().Get(ctx, dep1.ID())
	suite.Require().Error(err, "UOW2 should not see dep1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.DepartureRepository().Get(ctx, dep1.ID())
	suite.Require().NoError(err, "Dep1 should persist after commit")

	_, err = newUow.DepartureRepository().Get(ctx, dep2.ID())
	suite.Require().Error(err, "Dep2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	dep := createTestDeparture(8)

	err := uow.DepartureRepository().Add(ctx, dep)
	suite.Require().NoError(err)

	retrieved, err := uow.DepartureRepository().Get(ctx, dep.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(dep.ID()))

	newUow := suite.factory.Create()
	retrieved, err = newUow.DepartureRepository().Get(ctx, dep.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(dep.ID()))
}

// TestUnitOfWork_CancellationWorkflow verifies that cancelling a reservation
// removes its passengers from the occupancy aggregation in the same commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CancellationWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	dep := createTestDeparture(10)
	err := uow.DepartureRepository().Add(ctx, dep)
	suite.Require().NoError(err)

	booking := createTestReservation(dep.ID(), 3, 1)
	err = uow.ReservationRepository().Add(ctx, booking)
	suite.Require().NoError(err)

	occupancy, err := uow.ReservationRepository().SumActivePassengers(ctx, dep.ID())
	suite.Require().NoError(err)
	suite.Equal(4, occupancy)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	retrieved, err := uow.ReservationRepository().Get(ctx, booking.ID())
	suite.Require().NoError(err)
	err = retrieved.Cancel()
	suite.Require().NoError(err)
	err = uow.ReservationRepository().Update(ctx, retrieved)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	occupancy, err = newUow.ReservationRepository().SumActivePassengers(ctx, dep.ID())
	suite.Require().NoError(err)
	suite.Equal(0, occupancy, "Cancelled passengers must not count towards occupancy")
}

// TestUnitOfWork_ConcurrentAdmissions races many booking attempts against one
// departure near its capacity boundary. The row lock taken by GetForAdmission
// serializes the check-then-insert sequence, so the sum of admitted passengers
// must never exceed the vehicle capacity.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentAdmissions() {
	ctx := context.Background()
	allocator := services.NewCapacityAllocator()

	const capacity = 10
	dep := createTestDeparture(capacity)

	setupUow := suite.factory.Create()
	err := setupUow.DepartureRepository().Add(ctx, dep)
	suite.Require().NoError(err)

	const attempts = 25
	rng := rand.New(rand.NewSource(42))
	groupSizes := make([]int, attempts)
	for i := range groupSizes {
		groupSizes[i] = 1 + rng.Intn(3)
	}

	var wg sync.WaitGroup
	admitted := make([]bool, attempts)
	failures := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(slot, passengers int) {
			defer wg.Done()

			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				failures[slot] = err
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			locked, err := uow.DepartureRepository().GetForAdmission(ctx, dep.ID())
			if err != nil {
				failures[slot] = err
				return
			}

			occupancy, err := uow.ReservationRepository().SumActivePassengers(ctx, dep.ID())
			if err != nil {
				failures[slot] = err
				return
			}

			decision, err := allocator.Admit(locked, occupancy, passengers, 0)
			if err != nil {
				failures[slot] = err
				return
			}
			if !decision.Admitted {
				return
			}

			booking := createTestReservation(dep.ID(), passengers, 0)
			if err := uow.ReservationRepository().Add(ctx, booking); err != nil {
				failures[slot] = err
				return
			}
			if err := uow.Commit(ctx); err != nil {
				failures[slot] = err
				return
			}
			admitted[slot] = true
		}(i, groupSizes[i])
	}
	wg.Wait()

	for i, err := range failures {
		suite.Require().NoError(err, "attempt %d failed unexpectedly", i)
	}

	finalUow := suite.factory.Create()
	occupancy, err := finalUow.ReservationRepository().SumActivePassengers(ctx, dep.ID())
	suite.Require().NoError(err)

	admittedPassengers := 0
	for i, ok := range admitted {
		if ok {
			admittedPassengers += groupSizes[i]
		}
	}
	suite.Equal(admittedPassengers, occupancy, "Occupancy must match the sum of admitted groups")
	suite.LessOrEqual(occupancy, capacity, "Admitted passengers must never exceed capacity")
	suite.Greater(occupancy, 0, "Some bookings should have been admitted")

	// 25 attempts of at least one passenger each against 10 seats must leave
	// the departure full: the smallest rejected group needs one free seat.
	suite.GreaterOrEqual(occupancy, capacity-2, "Departure should be nearly full after the race")
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
