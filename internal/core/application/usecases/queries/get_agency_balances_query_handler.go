package queries

import (
	"context"
	"sort"

	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/services"
	"tourops/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgencyBalancesQueryHandler computes settlement balances from
// reservation history.
//
// The balance is never stored: every call re-aggregates the active
// reservations in the window, so a cancellation is reflected in the next
// report with no reconciliation step. Rows group by the counterparty
// agency (the transfer target when one exists, otherwise the selling
// agency) plus the transfer and collection flags; each subgroup classifies
// into one scenario and contributes a signed amount, and subgroups of the
// same agency fold into a single response line.
//
// Example:
//
//	handler := NewGetAgencyBalancesQueryHandler(db, agencies)
//	query, _ := NewGetAgencyBalancesQuery(kernel.MonthWindow(reportDate))
//	balances, err := handler.Handle(ctx, query)
type GetAgencyBalancesQueryHandler struct {
	db         *gorm.DB
	agencies   ports.AgencyDirectory
	calculator services.SettlementCalculator
}

// NewGetAgencyBalancesQueryHandler creates a handler for settlement reports.
// Requires a GORM database connection and the agency directory for
// self-identity checks.
func NewGetAgencyBalancesQueryHandler(db *gorm.DB, agencies ports.AgencyDirectory) GetAgencyBalancesQueryHandler {
	return GetAgencyBalancesQueryHandler{
		db:         db,
		agencies:   agencies,
		calculator: services.NewSettlementCalculator(),
	}
}

// subgroup is one (agency, transferred, agencyCollected) aggregation row.
type subgroup struct {
	agencyID        kernel.UUID
	transferred     bool
	agencyCollected bool
	reservations    int
	passengers      int
	costBasis       kernel.Money
	collected       kernel.Money
}

// Handle executes the settlement aggregation.
//
// Only active reservations created inside the window count. Reservations
// with no agency at all (operator selling directly to the public) have no
// settlement counterparty and are excluded. Results are sorted by agency
// identifier for stable output.
func (h GetAgencyBalancesQueryHandler) Handle(
	ctx context.Context,
	query GetAgencyBalancesQuery,
) ([]AgencyBalanceResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	groups, err := h.loadSubgroups(ctx, query)
	if err != nil {
		return nil, err
	}

	byAgency := make(map[kernel.UUID]*AgencyBalanceResponse)
	dominant := make(map[kernel.UUID]kernel.Money)

	for _, g := range groups {
		isSelf, selfErr := h.agencies.IsSelf(ctx, g.agencyID)
		if selfErr != nil {
			return nil, selfErr
		}

		scenario := h.calculator.Classify(isSelf, g.transferred, g.agencyCollected)
		balance := h.calculator.Balance(scenario, g.collected, g.costBasis)

		line, ok := byAgency[g.agencyID]
		if !ok {
			line = &AgencyBalanceResponse{AgencyID: g.agencyID, Scenario: scenario}
			byAgency[g.agencyID] = line
			dominant[g.agencyID] = balance
		}

		line.Reservations += g.reservations
		line.Passengers += g.passengers
		line.CostBasis = line.CostBasis.Add(g.costBasis)
		line.Collected = line.Collected.Add(g.collected)
		line.Balance = line.Balance.Add(balance)

		// An agency with mixed activity gets labelled by its largest
		// contribution; the self identity always wins outright.
		switch {
		case scenario == services.ScenarioSelf:
			line.Scenario = services.ScenarioSelf
		case line.Scenario != services.ScenarioSelf && absCents(balance) > absCents(dominant[g.agencyID]):
			line.Scenario = scenario
			dominant[g.agencyID] = balance
		}
	}

	responses := make([]AgencyBalanceResponse, 0, len(byAgency))
	for _, line := range byAgency {
		if line.Scenario == services.ScenarioSelf {
			line.Balance = kernel.ZeroMoney()
		}
		line.BalanceClass = h.calculator.ClassifyBalance(line.Balance)
		responses = append(responses, *line)
	}

	sort.Slice(responses, func(i, j int) bool {
		return responses[i].AgencyID.String() < responses[j].AgencyID.String()
	})

	return responses, nil
}

func (h GetAgencyBalancesQueryHandler) loadSubgroups(
	ctx context.Context,
	query GetAgencyBalancesQuery,
) ([]subgroup, error) {
	sql := `
		SELECT
			COALESCE(transferred_to_agency_id, origin_agency_id) AS agency_id,
			(transferred_to_agency_id IS NOT NULL)               AS transferred,
			agency_collected,
			COUNT(*)                                             AS reservations,
			COALESCE(SUM(adults + children), 0)                  AS passengers,
			COALESCE(SUM(cost_basis), 0)                         AS cost_basis,
			COALESCE(SUM(collected), 0)                          AS collected
		FROM reservations
		WHERE active = true
		  AND created_at >= ? AND created_at < ?
		  AND COALESCE(transferred_to_agency_id, origin_agency_id) IS NOT NULL
	`
	args := []any{query.Window().From(), query.Window().To()}

	if query.AgencyID() != nil {
		sql += ` AND COALESCE(transferred_to_agency_id, origin_agency_id) = ?`
		args = append(args, query.AgencyID().Bytes())
	}

	sql += `
		GROUP BY 1, 2, 3
		ORDER BY 1
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]subgroup, 0)

	for rows.Next() {
		var (
			id                           uuid.UUID
			transferred, agencyCollected bool
			reservations, passengers     int
			costBasis, collected         int64
		)

		if err = rows.Scan(
			&id, &transferred, &agencyCollected,
			&reservations, &passengers, &costBasis, &collected,
		); err != nil {
			return nil, err
		}

		agencyID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		groups = append(groups, subgroup{
			agencyID:        agencyID,
			transferred:     transferred,
			agencyCollected: agencyCollected,
			reservations:    reservations,
			passengers:      passengers,
			costBasis:       kernel.MoneyFromCents(costBasis),
			collected:       kernel.MoneyFromCents(collected),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

func absCents(m kernel.Money) int64 {
	if m.IsNegative() {
		return -m.Cents()
	}
	return m.Cents()
}
