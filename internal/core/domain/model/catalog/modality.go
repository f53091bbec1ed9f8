package catalog

import (
	"fmt"

	"tourops/internal/pkg/errs"
)

// Modality is the pricing mode of a service: per-passenger (collective) or
// flat per group (private).
type Modality int

const (
	// ModalityUnknown represents an invalid or undefined modality.
	ModalityUnknown Modality = iota

	// Collective prices every passenger individually; children pay the adult
	// unit price reduced by the entry's child discount rate.
	Collective

	// Private is a flat charge for the whole group, independent of headcount.
	Private
)

// Validate checks if the Modality value is valid.
func (m Modality) Validate() error {
	if m != Collective && m != Private {
		return errs.NewValueIsInvalidErrorWithCause("modality", fmt.Errorf("%d is not a valid modality", m))
	}
	return nil
}

// String returns the human-readable name of the modality. Implements fmt.Stringer.
func (m Modality) String() string {
	switch m {
	case Collective:
		return "Collective"
	case Private:
		return "Private"
	default:
		return "Unknown"
	}
}
