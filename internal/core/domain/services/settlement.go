package services

import (
	"tourops/internal/core/domain/model/kernel"
)

// Scenario classifies the commercial relationship of reservations being
// settled with an agency.
type Scenario int

const (
	// ScenarioUnknown represents an invalid or undefined scenario.
	ScenarioUnknown Scenario = iota

	// ScenarioDirect is a normal sale: the agency sold the service and the
	// operator ran it; no transfer took place.
	ScenarioDirect

	// ScenarioTransferOut is the operator handing a service off to a
	// partner agency while keeping the client relationship.
	ScenarioTransferOut

	// ScenarioTransferIn is the partner agency's side of a transfer: the
	// receiving agency charged the client directly.
	ScenarioTransferIn

	// ScenarioSelf marks the operator's own agency identity, which is
	// exempt from settlement regardless of any computed balance.
	ScenarioSelf
)

// String returns the human-readable name of the scenario. Implements fmt.Stringer.
func (s Scenario) String() string {
	switch s {
	case ScenarioDirect:
		return "Direct"
	case ScenarioTransferOut:
		return "TransferOut"
	case ScenarioTransferIn:
		return "TransferIn"
	case ScenarioSelf:
		return "Self"
	default:
		return "Unknown"
	}
}

// BalanceClass tells who owes whom for a settled balance.
type BalanceClass int

const (
	// Settled means neither party owes the other.
	Settled BalanceClass = iota

	// AgencyOwesOperator means the balance is positive: the agency owes the
	// operator.
	AgencyOwesOperator

	// OperatorOwesAgency means the balance is negative: the operator owes
	// the agency.
	OperatorOwesAgency
)

// String returns the human-readable name of the balance class. Implements fmt.Stringer.
func (c BalanceClass) String() string {
	switch c {
	case AgencyOwesOperator:
		return "AgencyOwesOperator"
	case OperatorOwesAgency:
		return "OperatorOwesAgency"
	default:
		return "Settled"
	}
}

// SettlementCalculator classifies reservations into settlement scenarios and
// computes the signed balance between the operator and an agency.
//
// Sign convention throughout: positive means the agency owes the operator,
// negative means the operator owes the agency, zero means settled.
//
// The calculator is a grouped-reduction helper with no internal state; the
// read-side query feeds it aggregated figures recomputed from reservation
// history on every call.
type SettlementCalculator struct{}

// NewSettlementCalculator creates a new SettlementCalculator instance.
func NewSettlementCalculator() SettlementCalculator {
	return SettlementCalculator{}
}

// Classify determines the settlement scenario for reservations aggregated
// against one agency.
//
// Parameters:
//   - isSelf: the agency is the operator's own identity
//   - transferred: the reservations carry a transferred-to agency
//   - agencyCollected: the partner agency charged the client directly
//
// The operator's own identity always classifies as Self, before any other
// rule is considered.
func (SettlementCalculator) Classify(isSelf, transferred, agencyCollected bool) Scenario {
	switch {
	case isSelf:
		return ScenarioSelf
	case !transferred:
		return ScenarioDirect
	case agencyCollected:
		return ScenarioTransferIn
	default:
		return ScenarioTransferOut
	}
}

// Balance computes the signed balance for one scenario given the aggregated
// collected amount and cost basis.
//
// Rules:
//   - Direct: collected − cost basis.
//   - TransferOut: collected − cost basis when anything was collected from
//     the client; otherwise the partner owes the full cost basis
//     (commission-only model).
//   - TransferIn: collected − cost basis when the receiving agency collected
//     from the client; otherwise the receiving agency is credited the full
//     cost basis.
//   - Self: always zero; the operator does not owe itself.
//
// Note the transfer rules branch on collected > 0, so a reservation that
// legitimately collects exactly zero is indistinguishable from the
// commission-only model. This mirrors the observed catalog behavior and is
// deliberately preserved.
func (SettlementCalculator) Balance(scenario Scenario, collected, costBasis kernel.Money) kernel.Money {
	switch scenario {
	case ScenarioSelf:
		return kernel.ZeroMoney()
	case ScenarioDirect:
		return collected.Sub(costBasis)
	case ScenarioTransferOut:
		if collected.IsPositive() {
			return collected.Sub(costBasis)
		}
		return costBasis
	case ScenarioTransferIn:
		if collected.IsPositive() {
			return collected.Sub(costBasis)
		}
		return costBasis.Neg()
	default:
		return kernel.ZeroMoney()
	}
}

// ClassifyBalance maps a signed balance to who owes whom.
func (SettlementCalculator) ClassifyBalance(balance kernel.Money) BalanceClass {
	switch {
	case balance.IsPositive():
		return AgencyOwesOperator
	case balance.IsNegative():
		return OperatorOwesAgency
	default:
		return Settled
	}
}
