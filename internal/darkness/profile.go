package darkness

import (
	"time"

	"github.com/duskhaven/go-dusk/internal/region"
)

// Profile is the resolved per-region cycle tuning used at runtime. Regions
// whose assets carry no cycle profile run on DefaultProfile.
type Profile struct {
	Calm     time.Duration
	Warning  time.Duration
	Active   time.Duration
	Cooldown time.Duration

	BaseIntensity float64
	MaxIntensity  float64
	Ramp          time.Duration

	SafeRadius float64
}

// warningCeiling caps the warning-phase ramp relative to base intensity. The
// foreshadowing stays subtle, never full strength.
const warningCeiling = 0.3

func DefaultProfile() *Profile {
	return &Profile{
		Calm:          3 * time.Minute,
		Warning:       30 * time.Second,
		Active:        90 * time.Second,
		Cooldown:      20 * time.Second,
		BaseIntensity: 0.4,
		MaxIntensity:  0.9,
		Ramp:          15 * time.Second,
		SafeRadius:    60,
	}
}

// ProfileFromSpec converts a validated asset cycle profile to runtime form.
func ProfileFromSpec(spec *region.CycleProfile) *Profile {
	return &Profile{
		Calm:          secs(spec.CalmSeconds),
		Warning:       secs(spec.WarningSeconds),
		Active:        secs(spec.ActiveSeconds),
		Cooldown:      secs(spec.CooldownSeconds),
		BaseIntensity: spec.BaseIntensity,
		MaxIntensity:  spec.MaxIntensity,
		Ramp:          secs(spec.RampSeconds),
		SafeRadius:    spec.SafeRadius,
	}
}

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// duration returns the configured length of the given phase.
func (p *Profile) duration(phase Phase) time.Duration {
	switch phase {
	case PhaseWarning:
		return p.Warning
	case PhaseActive:
		return p.Active
	case PhaseCooldown:
		return p.Cooldown
	default:
		return p.Calm
	}
}

// intensity computes the hazard intensity for a phase given how much of it
// remains.
func (p *Profile) intensity(phase Phase, remaining time.Duration) float64 {
	switch phase {
	case PhaseWarning:
		progress := 1 - clamp01(remaining.Seconds()/p.Warning.Seconds())
		return warningCeiling * p.BaseIntensity * progress
	case PhaseActive:
		if p.Ramp <= 0 {
			return p.MaxIntensity
		}
		elapsed := p.Active - remaining
		if elapsed >= p.Ramp {
			return p.MaxIntensity
		}
		frac := clamp01(elapsed.Seconds() / p.Ramp.Seconds())
		return p.BaseIntensity + (p.MaxIntensity-p.BaseIntensity)*frac
	case PhaseCooldown:
		return p.BaseIntensity * clamp01(remaining.Seconds()/p.Cooldown.Seconds())
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
