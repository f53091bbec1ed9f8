// Package queries contains read-only operations in the CQRS architecture.
// Query handlers go straight to the database and return plain response
// structs; they never load or mutate aggregates.
package queries

import (
	"errors"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/services"
	"tourops/internal/pkg/guard"
)

var (
	ErrGetAgencyBalancesQueryIsNotConstructed = errors.New(
		"GetAgencyBalancesQuery must be created via NewGetAgencyBalancesQuery or NewGetAgencyBalanceQuery constructor",
	)
)

// GetAgencyBalancesQuery requests settlement balances over a reporting
// window, either for every agency or narrowed to a single one.
//
// Example:
//
//	window := kernel.MonthWindow(reportDate)
//	query, _ := NewGetAgencyBalancesQuery(window)
//	handler := NewGetAgencyBalancesQueryHandler(db, agencies)
//
//	balances, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("settlement report failed: %w", err)
//	}
//	for _, b := range balances {
//	    fmt.Printf("%s %s: %s\n", b.AgencyID, b.Scenario, b.Balance)
//	}
type GetAgencyBalancesQuery struct {
	window   kernel.DateWindow
	agencyID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgencyBalancesQuery creates a query for every agency with activity
// in the window.
func NewGetAgencyBalancesQuery(window kernel.DateWindow) (GetAgencyBalancesQuery, error) {
	if err := window.Validate(); err != nil {
		return GetAgencyBalancesQuery{}, err
	}

	return GetAgencyBalancesQuery{
		window: window,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewGetAgencyBalanceQuery creates a query narrowed to one agency.
func NewGetAgencyBalanceQuery(agencyID kernel.UUID, window kernel.DateWindow) (GetAgencyBalancesQuery, error) {
	if err := agencyID.Validate(); err != nil {
		return GetAgencyBalancesQuery{}, err
	}
	if err := window.Validate(); err != nil {
		return GetAgencyBalancesQuery{}, err
	}

	return GetAgencyBalancesQuery{
		window:   window,
		agencyID: &agencyID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetAgencyBalancesQueryIsNotConstructed if validation fails.
func (q GetAgencyBalancesQuery) Validate() error {
	return q.guard.Validate(ErrGetAgencyBalancesQueryIsNotConstructed)
}

// Window returns the reporting window.
func (q GetAgencyBalancesQuery) Window() kernel.DateWindow {
	return q.window
}

// AgencyID returns the agency filter, nil when reporting on all agencies.
func (q GetAgencyBalancesQuery) AgencyID() *kernel.UUID {
	return q.agencyID
}

// AgencyBalanceResponse is one agency's settlement line for a window.
// The balance keeps the calculator's sign convention: positive means the
// agency owes the operator.
type AgencyBalanceResponse struct {
	AgencyID     kernel.UUID
	Scenario     services.Scenario
	BalanceClass services.BalanceClass
	Reservations int
	Passengers   int
	CostBasis    kernel.Money
	Collected    kernel.Money
	Balance      kernel.Money
}
