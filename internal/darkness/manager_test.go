package darkness

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/duskhaven/go-dusk/internal/event"
	"github.com/duskhaven/go-dusk/internal/region"
)

// recordingPublisher captures published events for inspection.
type recordingPublisher struct {
	subjects []string
	events   []event.Envelope
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	var env event.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	p.subjects = append(p.subjects, subject)
	p.events = append(p.events, env)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func testProfile() *region.CycleProfile {
	return &region.CycleProfile{
		CalmSeconds:     60,
		WarningSeconds:  10,
		ActiveSeconds:   30,
		CooldownSeconds: 5,
		BaseIntensity:   0.4,
		MaxIntensity:    0.8,
		RampSeconds:     10,
		SafeRadius:      50,
	}
}

func newTestManager(pub event.Publisher) (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	regions := map[string]*region.Region{
		"hollow": {Name: "Verdant Hollow", Cycle: testProfile()},
	}
	m := NewManager(regions, pub, WithClock(clock.now))

	// First tick only records the baseline time.
	_ = m.Tick(context.Background())
	return m, clock
}

// tick advances the clock and runs one tick.
func tick(t *testing.T, m *Manager, clock *fakeClock, d time.Duration) {
	t.Helper()
	clock.advance(d)
	if err := m.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
}

func TestManager_InitialState(t *testing.T) {
	m, _ := newTestManager(nil)

	st := m.RegionStatus("hollow")
	if st == nil {
		t.Fatal("expected region status")
	}
	testutil.AssertEqual(t, "phase", st.Phase, PhaseCalm)
	testutil.AssertEqual(t, "intensity", st.Intensity, 0.0)
	testutil.AssertEqual(t, "wave", st.Wave, 0)
	testutil.AssertEqual(t, "danger", st.Danger, DangerNone)
}

func TestManager_UnknownRegion(t *testing.T) {
	m, _ := newTestManager(nil)

	if st := m.RegionStatus("nowhere"); st != nil {
		t.Errorf("expected nil status, got %+v", st)
	}
	testutil.AssertEqual(t, "danger", m.Danger("nowhere"), DangerNone)
	testutil.AssertEqual(t, "safe", m.IsPositionSafe("nowhere", 0, 0), false)

	// Commands against unknown regions are silent no-ops.
	m.MarkEndangered("nowhere", "occ-1")
	m.MarkRescued(context.Background(), "nowhere", "occ-1", "occ-2")
	m.ForceActive(context.Background(), "nowhere", 0)
	m.ForceClear(context.Background(), "nowhere")
	testutil.AssertEqual(t, "lantern id", m.RegisterLantern("", "nowhere", 0, 0), "")
}

func TestManager_CycleOrder(t *testing.T) {
	pub := &recordingPublisher{}
	m, clock := newTestManager(pub)

	expected := []struct {
		step  time.Duration
		phase Phase
		wave  int
	}{
		{61 * time.Second, PhaseWarning, 0},
		{11 * time.Second, PhaseActive, 1},
		{31 * time.Second, PhaseCooldown, 1},
		{6 * time.Second, PhaseCalm, 1},
		{61 * time.Second, PhaseWarning, 1},
		{11 * time.Second, PhaseActive, 2},
	}

	for i, exp := range expected {
		tick(t, m, clock, exp.step)
		st := m.RegionStatus("hollow")
		testutil.AssertEqual(t, "phase", st.Phase, exp.phase)
		testutil.AssertEqual(t, "wave", st.Wave, exp.wave)
		if st.RemainingSeconds < 0 {
			t.Errorf("step %d: negative remaining %f", i, st.RemainingSeconds)
		}
	}

	types := pub.types()
	wantTypes := []string{
		EventWaveApproaching, EventWaveActive, EventWaveEnded,
		EventWaveCleared, EventWaveApproaching, EventWaveActive,
	}
	testutil.AssertEqual(t, "event count", len(types), len(wantTypes))
	for i, want := range wantTypes {
		testutil.AssertEqual(t, "event type", types[i], want)
	}
	for _, s := range pub.subjects {
		testutil.AssertEqual(t, "subject", s, event.RegionSubject("hollow"))
	}
}

func TestManager_IntensityRamps(t *testing.T) {
	m, clock := newTestManager(nil)

	// Calm holds at zero.
	tick(t, m, clock, 30*time.Second)
	testutil.AssertEqual(t, "calm intensity", m.RegionStatus("hollow").Intensity, 0.0)

	// Halfway into warning: 0.3 * base * 0.5.
	tick(t, m, clock, 31*time.Second) // into warning, 10s remaining
	tick(t, m, clock, 5*time.Second)
	st := m.RegionStatus("hollow")
	if diff := st.Intensity - 0.3*0.4*0.5; diff < -0.01 || diff > 0.01 {
		t.Errorf("warning intensity = %f, want ~%f", st.Intensity, 0.3*0.4*0.5)
	}

	// Start of active: near base intensity, ramping toward max.
	tick(t, m, clock, 6*time.Second) // into active
	tick(t, m, clock, 5*time.Second) // halfway through 10s ramp
	st = m.RegionStatus("hollow")
	if st.Intensity < 0.4 || st.Intensity > 0.8 {
		t.Errorf("ramp intensity = %f, want in (0.4, 0.8)", st.Intensity)
	}

	// Past the ramp: holds at max.
	tick(t, m, clock, 10*time.Second)
	testutil.AssertEqual(t, "held intensity", m.RegionStatus("hollow").Intensity, 0.8)
}

func TestManager_EndangeredAndRescued(t *testing.T) {
	pub := &recordingPublisher{}
	m, clock := newTestManager(pub)
	ctx := context.Background()

	// Outside the active phase both commands are no-ops.
	m.MarkEndangered("hollow", "occ-1")
	m.MarkRescued(ctx, "hollow", "occ-1", "occ-2")
	st := m.RegionStatus("hollow")
	testutil.AssertEqual(t, "endangered before active", len(st.Endangered), 0)
	testutil.AssertEqual(t, "rescued before active", len(st.Rescued), 0)

	tick(t, m, clock, 61*time.Second) // warning
	tick(t, m, clock, 11*time.Second) // active

	// Sets are empty right after entering active.
	st = m.RegionStatus("hollow")
	testutil.AssertEqual(t, "endangered at wave start", len(st.Endangered), 0)

	m.MarkEndangered("hollow", "occ-1")
	m.MarkEndangered("hollow", "occ-2")
	m.MarkEndangered("hollow", "occ-2") // duplicate collapses
	m.MarkRescued(ctx, "hollow", "occ-1", "occ-3")

	st = m.RegionStatus("hollow")
	testutil.AssertEqual(t, "endangered", len(st.Endangered), 2)
	testutil.AssertEqual(t, "rescued", len(st.Rescued), 1)

	// The rescue event names both occupants.
	last := pub.events[len(pub.events)-1]
	testutil.AssertEqual(t, "rescue event", last.Type, EventRescue)
	var resc Rescue
	if err := json.Unmarshal(last.Data, &resc); err != nil {
		t.Fatalf("unmarshal rescue: %v", err)
	}
	testutil.AssertEqual(t, "occupant", resc.Occupant, "occ-1")
	testutil.AssertEqual(t, "rescuer", resc.Rescuer, "occ-3")

	// Wave end carries the counts.
	tick(t, m, clock, 31*time.Second) // cooldown
	var ended WaveEnded
	found := false
	for _, e := range pub.events {
		if e.Type == EventWaveEnded {
			found = true
			if err := json.Unmarshal(e.Data, &ended); err != nil {
				t.Fatalf("unmarshal wave-ended: %v", err)
			}
		}
	}
	if !found {
		t.Fatal("expected wave-ended event")
	}
	testutil.AssertEqual(t, "ended endangered", ended.Endangered, 2)
	testutil.AssertEqual(t, "ended rescued", ended.Rescued, 1)
}

func TestManager_SafeZones(t *testing.T) {
	m, _ := newTestManager(nil)

	id := m.RegisterLantern("", "hollow", 100, 100)
	if id == "" {
		t.Fatal("expected generated lantern id")
	}

	tests := map[string]struct {
		x, y float64
		safe bool
	}{
		"at the lantern":      {100, 100, true},
		"inside the radius":   {130, 140, true},
		"exactly on the edge": {150, 100, true},
		"outside the radius":  {200, 200, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "safe", m.IsPositionSafe("hollow", tt.x, tt.y), tt.safe)
		})
	}

	m.UnregisterLantern(id)
	testutil.AssertEqual(t, "safe after unregister", m.IsPositionSafe("hollow", 100, 100), false)
}

func TestManager_ForceActive(t *testing.T) {
	pub := &recordingPublisher{}
	m, _ := newTestManager(pub)
	ctx := context.Background()

	m.ForceActive(ctx, "hollow", 45*time.Second)

	st := m.RegionStatus("hollow")
	testutil.AssertEqual(t, "phase", st.Phase, PhaseActive)
	testutil.AssertEqual(t, "wave", st.Wave, 1)
	testutil.AssertEqual(t, "remaining", st.RemainingSeconds, 45.0)

	// Emits the same event a natural transition would.
	testutil.AssertEqual(t, "event", pub.events[len(pub.events)-1].Type, EventWaveActive)

	// Forcing an already-active region only extends the timer.
	m.ForceActive(ctx, "hollow", 90*time.Second)
	st = m.RegionStatus("hollow")
	testutil.AssertEqual(t, "wave unchanged", st.Wave, 1)
	testutil.AssertEqual(t, "extended", st.RemainingSeconds, 90.0)
}

func TestManager_ForceClear(t *testing.T) {
	pub := &recordingPublisher{}
	m, _ := newTestManager(pub)
	ctx := context.Background()

	m.RegisterLantern("lantern-1", "hollow", 0, 0)
	m.ForceActive(ctx, "hollow", 0)
	m.MarkEndangered("hollow", "occ-1")

	m.ForceClear(ctx, "hollow")

	st := m.RegionStatus("hollow")
	testutil.AssertEqual(t, "phase", st.Phase, PhaseCalm)
	testutil.AssertEqual(t, "wave preserved", st.Wave, 1)
	testutil.AssertEqual(t, "intensity", st.Intensity, 0.0)

	// An active region winds down through the same events a natural cycle
	// emits: ended, then cleared.
	types := pub.types()
	testutil.AssertEqual(t, "ended", types[len(types)-2], EventWaveEnded)
	testutil.AssertEqual(t, "cleared", types[len(types)-1], EventWaveCleared)

	// Region reset clears its lanterns.
	testutil.AssertEqual(t, "lanterns", st.Lanterns, 0)
	testutil.AssertEqual(t, "safe after reset", m.IsPositionSafe("hollow", 0, 0), false)
}

func TestManager_DangerLevels(t *testing.T) {
	tests := map[string]struct {
		phase     Phase
		intensity float64
		exp       DangerLevel
	}{
		"calm":            {PhaseCalm, 0, DangerNone},
		"warning":         {PhaseWarning, 0.1, DangerLow},
		"cooldown":        {PhaseCooldown, 0.2, DangerLow},
		"active low ramp": {PhaseActive, 0.45, DangerMedium},
		"active mid":      {PhaseActive, 0.6, DangerHigh},
		"active peak":     {PhaseActive, 0.9, DangerExtreme},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "danger", dangerFor(tt.phase, tt.intensity), tt.exp)
		})
	}
}

func TestProfile_DefaultsForMissingCycle(t *testing.T) {
	regions := map[string]*region.Region{
		"plain": {Name: "Plain"},
	}
	m := NewManager(regions, nil)

	st := m.RegionStatus("plain")
	if st == nil {
		t.Fatal("expected region status")
	}
	def := DefaultProfile()
	testutil.AssertEqual(t, "remaining", st.RemainingSeconds, def.Calm.Seconds())
}

func TestProfile_DefaultOverride(t *testing.T) {
	regions := map[string]*region.Region{
		"plain": {Name: "Plain"},
	}
	override := DefaultProfile()
	override.Calm = 42 * time.Second
	m := NewManager(regions, nil, WithDefaultProfile(override))

	st := m.RegionStatus("plain")
	testutil.AssertEqual(t, "remaining", st.RemainingSeconds, 42.0)
}
