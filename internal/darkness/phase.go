package darkness

// Phase is one of the four states of a region's darkness cycle. The cycle is
// forward-only: calm, warning, active, cooldown, then back to calm.
type Phase int

const (
	PhaseCalm Phase = iota
	PhaseWarning
	PhaseActive
	PhaseCooldown
)

func (p Phase) String() string {
	switch p {
	case PhaseCalm:
		return "calm"
	case PhaseWarning:
		return "warning"
	case PhaseActive:
		return "active"
	case PhaseCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// next returns the phase that follows p in the cycle.
func (p Phase) next() Phase {
	switch p {
	case PhaseCalm:
		return PhaseWarning
	case PhaseWarning:
		return PhaseActive
	case PhaseActive:
		return PhaseCooldown
	default:
		return PhaseCalm
	}
}

// DangerLevel is a coarse classification of how hazardous a region currently
// is, derived from phase and intensity.
type DangerLevel string

const (
	DangerNone    DangerLevel = "none"
	DangerLow     DangerLevel = "low"
	DangerMedium  DangerLevel = "medium"
	DangerHigh    DangerLevel = "high"
	DangerExtreme DangerLevel = "extreme"
)

func dangerFor(phase Phase, intensity float64) DangerLevel {
	switch phase {
	case PhaseWarning, PhaseCooldown:
		return DangerLow
	case PhaseActive:
		switch {
		case intensity < 0.5:
			return DangerMedium
		case intensity < 0.75:
			return DangerHigh
		default:
			return DangerExtreme
		}
	default:
		return DangerNone
	}
}
