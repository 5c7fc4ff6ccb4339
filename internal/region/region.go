package region

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Region defines one independently simulated world subdivision. Regions are
// loaded from asset files at startup and never change afterward.
type Region struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Cycle       *CycleProfile `json:"cycle,omitempty"`
}

func (r *Region) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}

	if r.Cycle != nil {
		el.Add(r.Cycle.Validate())
	}

	return el.Err()
}

// CycleProfile tunes the darkness cycle for a region. A region without a
// profile uses the engine default.
type CycleProfile struct {
	CalmSeconds     float64 `json:"calm_seconds"`
	WarningSeconds  float64 `json:"warning_seconds"`
	ActiveSeconds   float64 `json:"active_seconds"`
	CooldownSeconds float64 `json:"cooldown_seconds"`

	BaseIntensity float64 `json:"base_intensity"`
	MaxIntensity  float64 `json:"max_intensity"`
	RampSeconds   float64 `json:"ramp_seconds"`

	SafeRadius float64 `json:"safe_radius"`
}

func (p *CycleProfile) Validate() error {
	el := errors.NewErrorList()

	for name, v := range map[string]float64{
		"calm_seconds":     p.CalmSeconds,
		"warning_seconds":  p.WarningSeconds,
		"active_seconds":   p.ActiveSeconds,
		"cooldown_seconds": p.CooldownSeconds,
	} {
		if v <= 0 {
			el.Add(fmt.Errorf("%s must be positive", name))
		}
	}

	if p.BaseIntensity < 0 || p.BaseIntensity > 1 {
		el.Add(fmt.Errorf("base_intensity must be in [0,1]"))
	}
	if p.MaxIntensity < p.BaseIntensity || p.MaxIntensity > 1 {
		el.Add(fmt.Errorf("max_intensity must be in [base_intensity,1]"))
	}
	if p.RampSeconds < 0 {
		el.Add(fmt.Errorf("ramp_seconds must be non-negative"))
	}
	if p.RampSeconds > p.ActiveSeconds {
		el.Add(fmt.Errorf("ramp_seconds cannot exceed active_seconds"))
	}
	if p.SafeRadius <= 0 {
		el.Add(fmt.Errorf("safe_radius must be positive"))
	}

	return el.Err()
}
