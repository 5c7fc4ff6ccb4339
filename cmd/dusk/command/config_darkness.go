package command

import (
	"fmt"
	"time"

	"github.com/duskhaven/go-dusk/internal/darkness"
	"github.com/pixil98/go-errors"
)

// DarknessConfig overrides the fallback cycle profile used by regions whose
// assets carry no profile of their own. Zero-valued fields keep their
// defaults.
type DarknessConfig struct {
	CalmLength     string  `json:"calm_length"`
	WarningLength  string  `json:"warning_length"`
	ActiveLength   string  `json:"active_length"`
	CooldownLength string  `json:"cooldown_length"`
	BaseIntensity  float64 `json:"base_intensity"`
	MaxIntensity   float64 `json:"max_intensity"`
	RampLength     string  `json:"ramp_length"`
	SafeRadius     float64 `json:"safe_radius"`
}

func (c *DarknessConfig) validate() error {
	el := errors.NewErrorList()

	for name, v := range map[string]string{
		"calm_length":     c.CalmLength,
		"warning_length":  c.WarningLength,
		"active_length":   c.ActiveLength,
		"cooldown_length": c.CooldownLength,
		"ramp_length":     c.RampLength,
	} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing %s: %w", name, err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("%s must be positive", name))
		}
	}

	if c.BaseIntensity < 0 || c.BaseIntensity > 1 {
		el.Add(fmt.Errorf("base_intensity must be between 0 and 1"))
	}
	if c.MaxIntensity < 0 || c.MaxIntensity > 1 {
		el.Add(fmt.Errorf("max_intensity must be between 0 and 1"))
	}
	if c.SafeRadius < 0 {
		el.Add(fmt.Errorf("safe_radius must not be negative"))
	}

	return el.Err()
}

func (c *DarknessConfig) BuildDefaultProfile() (*darkness.Profile, error) {
	p := darkness.DefaultProfile()

	set := func(name, v string, dst *time.Duration) error {
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		*dst = d
		return nil
	}

	if err := set("calm_length", c.CalmLength, &p.Calm); err != nil {
		return nil, err
	}
	if err := set("warning_length", c.WarningLength, &p.Warning); err != nil {
		return nil, err
	}
	if err := set("active_length", c.ActiveLength, &p.Active); err != nil {
		return nil, err
	}
	if err := set("cooldown_length", c.CooldownLength, &p.Cooldown); err != nil {
		return nil, err
	}
	if err := set("ramp_length", c.RampLength, &p.Ramp); err != nil {
		return nil, err
	}

	if c.BaseIntensity != 0 {
		p.BaseIntensity = c.BaseIntensity
	}
	if c.MaxIntensity != 0 {
		p.MaxIntensity = c.MaxIntensity
	}
	if c.SafeRadius != 0 {
		p.SafeRadius = c.SafeRadius
	}

	return p, nil
}
