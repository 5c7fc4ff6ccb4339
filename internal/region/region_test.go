package region

import "testing"

func TestRegionValidate(t *testing.T) {
	tests := map[string]struct {
		region *Region
		expErr bool
	}{
		"valid without cycle": {
			region: &Region{Name: "Verdant Hollow"},
		},
		"valid with cycle": {
			region: &Region{
				Name: "Gloom Reach",
				Cycle: &CycleProfile{
					CalmSeconds:     120,
					WarningSeconds:  20,
					ActiveSeconds:   60,
					CooldownSeconds: 15,
					BaseIntensity:   0.4,
					MaxIntensity:    0.9,
					RampSeconds:     10,
					SafeRadius:      50,
				},
			},
		},
		"missing name": {
			region: &Region{},
			expErr: true,
		},
		"bad cycle bubbles up": {
			region: &Region{
				Name:  "Broken",
				Cycle: &CycleProfile{},
			},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.region.Validate()
			if tt.expErr && err == nil {
				t.Error("expected error")
			}
			if !tt.expErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCycleProfileValidate(t *testing.T) {
	valid := func() *CycleProfile {
		return &CycleProfile{
			CalmSeconds:     120,
			WarningSeconds:  20,
			ActiveSeconds:   60,
			CooldownSeconds: 15,
			BaseIntensity:   0.4,
			MaxIntensity:    0.9,
			RampSeconds:     10,
			SafeRadius:      50,
		}
	}

	tests := map[string]struct {
		mutate func(*CycleProfile)
		expErr bool
	}{
		"valid":                    {mutate: func(*CycleProfile) {}},
		"zero calm duration":       {mutate: func(p *CycleProfile) { p.CalmSeconds = 0 }, expErr: true},
		"negative warning":         {mutate: func(p *CycleProfile) { p.WarningSeconds = -1 }, expErr: true},
		"base intensity above one": {mutate: func(p *CycleProfile) { p.BaseIntensity = 1.5 }, expErr: true},
		"max below base":           {mutate: func(p *CycleProfile) { p.MaxIntensity = 0.1 }, expErr: true},
		"ramp exceeds active":      {mutate: func(p *CycleProfile) { p.RampSeconds = 100 }, expErr: true},
		"zero safe radius":         {mutate: func(p *CycleProfile) { p.SafeRadius = 0 }, expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate()
			if tt.expErr && err == nil {
				t.Error("expected error")
			}
			if !tt.expErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
