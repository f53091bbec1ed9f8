package commands_test

import (
	"context"
	"time"

	"tourops/internal/core/application/usecases/commands"
	"tourops/internal/core/domain/model/catalog"
	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/model/reservation"
	"tourops/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDepartureRepository struct{ mock.Mock }

func (m *MockDepartureRepository) Add(ctx context.Context, dep *departure.Departure) error {
	args := m.Called(ctx, dep)
	return args.Error(0)
}
func (m *MockDepartureRepository) Update(ctx context.Context, dep *departure.Departure) error {
	args := m.Called(ctx, dep)
	return args.Error(0)
}
func (m *MockDepartureRepository) Get(ctx context.Context, id kernel.UUID) (*departure.Departure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*departure.Departure), args.Error(1)
}
func (m *MockDepartureRepository) GetForAdmission(ctx context.Context, id kernel.UUID) (*departure.Departure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*departure.Departure), args.Error(1)
}
func (m *MockDepartureRepository) GetScheduledDueBy(ctx context.Context, instant time.Time) ([]*departure.Departure, error) {
	args := m.Called(ctx, instant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*departure.Departure), args.Error(1)
}

type MockReservationRepository struct{ mock.Mock }

func (m *MockReservationRepository) Add(ctx context.Context, r *reservation.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepository) Update(ctx context.Context, r *reservation.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepository) Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}
func (m *MockReservationRepository) SumActivePassengers(ctx context.Context, departureID kernel.UUID) (int, error) {
	args := m.Called(ctx, departureID)
	return args.Int(0), args.Error(1)
}

type MockBookingUoW struct{ mock.Mock }

func (m *MockBookingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockBookingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockBookingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockBookingUoW) DepartureRepository() ports.DepartureRepository {
	args := m.Called()
	return args.Get(0).(ports.DepartureRepository)
}
func (m *MockBookingUoW) ReservationRepository() ports.ReservationRepository {
	args := m.Called()
	return args.Get(0).(ports.ReservationRepository)
}

type MockBookingUoWFactory struct{ mock.Mock }

func (m *MockBookingUoWFactory) Create() commands.BookingUoW {
	args := m.Called()
	return args.Get(0).(commands.BookingUoW)
}

type MockReservationUoW struct{ mock.Mock }

func (m *MockReservationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockReservationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockReservationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockReservationUoW) ReservationRepository() ports.ReservationRepository {
	args := m.Called()
	return args.Get(0).(ports.ReservationRepository)
}

type MockReservationUoWFactory struct{ mock.Mock }

func (m *MockReservationUoWFactory) Create() commands.ReservationUoW {
	args := m.Called()
	return args.Get(0).(commands.ReservationUoW)
}

type MockDepartureUoW struct{ mock.Mock }

func (m *MockDepartureUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDepartureUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDepartureUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDepartureUoW) DepartureRepository() ports.DepartureRepository {
	args := m.Called()
	return args.Get(0).(ports.DepartureRepository)
}

type MockDepartureUoWFactory struct{ mock.Mock }

func (m *MockDepartureUoWFactory) Create() commands.DepartureUoW {
	args := m.Called()
	return args.Get(0).(commands.DepartureUoW)
}

// StubServiceCatalog returns one fixed entry for every lookup.
type StubServiceCatalog struct {
	Entry catalog.ServiceEntry
	Err   error
}

func (s *StubServiceCatalog) GetServiceEntry(_ context.Context, _ kernel.UUID) (catalog.ServiceEntry, error) {
	if s.Err != nil {
		return catalog.ServiceEntry{}, s.Err
	}
	return s.Entry, nil
}

// StubAgencyDirectory answers eligibility and identity from fixed sets.
type StubAgencyDirectory struct {
	Eligible map[kernel.UUID]bool
	Self     map[kernel.UUID]bool
}

func (s *StubAgencyDirectory) IsDiscountEligible(_ context.Context, agencyID *kernel.UUID) (bool, error) {
	if agencyID == nil {
		return false, nil
	}
	return s.Eligible[*agencyID], nil
}

func (s *StubAgencyDirectory) IsSelf(_ context.Context, agencyID kernel.UUID) (bool, error) {
	return s.Self[agencyID], nil
}

// RecordingPublisher captures published change events for assertions.
type RecordingPublisher struct {
	Events []ports.ChangeEvent
}

func (p *RecordingPublisher) Publish(_ context.Context, event ports.ChangeEvent) {
	p.Events = append(p.Events, event)
}

// RecordingNotifier captures capacity warnings for assertions.
type RecordingNotifier struct {
	Warnings []kernel.UUID
}

func (n *RecordingNotifier) NotifyCapacityWarning(_ context.Context, departureID kernel.UUID, _, _ int) {
	n.Warnings = append(n.Warnings, departureID)
}
