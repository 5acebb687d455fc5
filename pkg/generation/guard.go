package generation

import (
	"fmt"

	"github.com/storyloom/engine/pkg/blueprint"
)

// Availability is the result of a pre-generation blueprint check.
type Availability struct {
	Allowed       bool   `json:"allowed"`
	Reason        string `json:"reason,omitempty"`
	BlueprintName string `json:"blueprint_name,omitempty"`
}

// CheckBlueprintAvailable is a synchronous guard intended to run right
// after variable selection and before any generation attempt, so callers
// can short-circuit with a user-facing message instead of discovering
// unavailability after spending an LLM call. It accepts the raw string
// identifiers a UI or API would hold.
func CheckBlueprintAvailable(reg *blueprint.Registry, tropeID, tensionID, endingID, modifierID string) Availability {
	reason := fmt.Sprintf("no blueprint exists for trope=%s tension=%s ending=%s modifier=%s",
		tropeID, tensionID, endingID, modifierID)

	tension, err := blueprint.ParseTension(tensionID)
	if err != nil {
		return Availability{Reason: reason}
	}
	ending, err := blueprint.ParseEnding(endingID)
	if err != nil {
		return Availability{Reason: reason}
	}
	modifier, err := blueprint.ParseModifier(modifierID)
	if err != nil {
		return Availability{Reason: reason}
	}

	bp := reg.Get(tropeID, tension, ending, modifier)
	if bp == nil {
		return Availability{Reason: reason}
	}

	return Availability{Allowed: true, BlueprintName: bp.Name}
}
