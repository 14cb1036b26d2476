// Candidate configuration edits and their evaluation results
package advisor

import (
	"fmt"

	"landersim/internal/config"
)

// Patch is a partial field assignment applied to a mission config.
// Keys name the editable scalar fields.
type Patch map[string]float64

// Editable patch keys.
const (
	FieldTargetDescent = "target_descent"
	FieldKp            = "kp"
	FieldMaxTime       = "max_time"
	FieldFuel          = "fuel"
	FieldThrust        = "thrust"
)

// Apply returns a copy of cfg with the patch applied. Unknown keys are
// rejected so a malformed candidate cannot silently no-op.
func (p Patch) Apply(cfg *config.Mission) (*config.Mission, error) {
	c := cfg.Clone()
	for key, val := range p {
		switch key {
		case FieldTargetDescent:
			c.Control.TargetDescentMps = val
		case FieldKp:
			c.Control.Kp = val
		case FieldMaxTime:
			c.Sim.MaxTimeSeconds = val
		case FieldFuel:
			c.Vehicle.FuelKg = val
		case FieldThrust:
			c.Vehicle.MaxThrustN = val
		default:
			return nil, fmt.Errorf("unknown patch field %q", key)
		}
	}
	return c, nil
}

// Suggestion is one candidate edit with its human-facing explanation
// and, after scoring, its estimated effect on the safe-landing rate.
type Suggestion struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Action  string `json:"action"`
	Change  string `json:"change"`
	Why     string `json:"why"`
	Patch   Patch  `json:"patch"`
	EstRate float64 `json:"est_safe_rate"`
	Delta   float64 `json:"delta"`
}

// formatValue renders a parameter for display.
func formatValue(field string, val float64) string {
	switch field {
	case FieldThrust:
		return fmt.Sprintf("%.0f N", val)
	case FieldMaxTime:
		return fmt.Sprintf("%.0f seconds", val)
	case FieldFuel:
		return fmt.Sprintf("%.1f kg", val)
	case FieldTargetDescent:
		return fmt.Sprintf("%.2f m/s", val)
	case FieldKp:
		return fmt.Sprintf("%.4g", val)
	}
	return fmt.Sprintf("%.2f", val)
}

func change(field string, oldVal, newVal float64) string {
	return fmt.Sprintf("%s -> %s", formatValue(field, oldVal), formatValue(field, newVal))
}
