package darkness

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-log"

	"github.com/duskhaven/go-dusk/internal/event"
	"github.com/duskhaven/go-dusk/internal/region"
)

// regionState is the mutable cycle state for one region. It exists for the
// lifetime of the process; only Tick and the explicit commands mutate it.
type regionState struct {
	id      string
	profile *Profile

	phase     Phase
	intensity float64
	remaining time.Duration
	wave      int

	endangered map[string]struct{}
	rescued    map[string]struct{}

	// cumulative counters surfaced on status queries
	totalEndangered int
	totalRescued    int
}

// Manager runs the darkness cycle for every region. All region and lantern
// state is owned here and accessed only under the manager's lock.
type Manager struct {
	mu       sync.RWMutex
	regions  map[string]*regionState
	lanterns map[string]*Lantern

	pub  event.Publisher
	now  func() time.Time
	last time.Time

	defaultProfile *Profile
}

type ManagerOpt func(*Manager)

// WithClock replaces the time source, letting tests drive the cycle.
func WithClock(now func() time.Time) ManagerOpt {
	return func(m *Manager) {
		m.now = now
	}
}

// WithDefaultProfile replaces the fallback profile used by regions whose
// assets carry no cycle profile of their own.
func WithDefaultProfile(p *Profile) ManagerOpt {
	return func(m *Manager) {
		m.defaultProfile = p
	}
}

// NewManager builds the cycle state for the given region set. Regions without
// a cycle profile in their asset run on the default profile.
func NewManager(regions map[string]*region.Region, pub event.Publisher, opts ...ManagerOpt) *Manager {
	m := &Manager{
		regions:        make(map[string]*regionState, len(regions)),
		lanterns:       map[string]*Lantern{},
		pub:            pub,
		now:            time.Now,
		defaultProfile: DefaultProfile(),
	}

	for _, opt := range opts {
		opt(m)
	}

	for id, r := range regions {
		profile := m.defaultProfile
		if r.Cycle != nil {
			profile = ProfileFromSpec(r.Cycle)
		}
		m.regions[id] = &regionState{
			id:         id,
			profile:    profile,
			phase:      PhaseCalm,
			remaining:  profile.Calm,
			endangered: map[string]struct{}{},
			rescued:    map[string]struct{}{},
		}
	}

	return m
}

// Tick advances every region by the wall time elapsed since the previous
// tick. Called by the driver.
func (m *Manager) Tick(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.last.IsZero() {
		m.last = now
		return nil
	}
	dt := now.Sub(m.last)
	m.last = now

	for _, rs := range m.regions {
		m.advance(ctx, rs, dt)
	}

	return nil
}

// advance runs one simulation step for a region: timer first, then intensity,
// then the transition check. Caller holds the lock.
func (m *Manager) advance(ctx context.Context, rs *regionState, dt time.Duration) {
	rs.remaining -= dt
	rs.intensity = rs.profile.intensity(rs.phase, rs.remaining)

	if rs.remaining > 0 {
		return
	}

	m.transition(ctx, rs, rs.phase.next(), 0)
}

// transition moves a region into the given phase, emitting the transition's
// event. A positive override replaces the configured phase duration. Caller
// holds the lock.
func (m *Manager) transition(ctx context.Context, rs *regionState, to Phase, override time.Duration) {
	rs.phase = to
	rs.remaining = rs.profile.duration(to)
	if override > 0 {
		rs.remaining = override
	}
	rs.intensity = rs.profile.intensity(to, rs.remaining)

	logger := log.GetLogger(ctx)

	switch to {
	case PhaseWarning:
		m.emit(ctx, rs.id, EventWaveApproaching, WaveApproaching{
			Region:         rs.id,
			Wave:           rs.wave + 1,
			WarningSeconds: rs.remaining.Seconds(),
		})
	case PhaseActive:
		rs.wave++
		rs.endangered = map[string]struct{}{}
		rs.rescued = map[string]struct{}{}
		logger.Infof("darkness wave %d active in region %s", rs.wave, rs.id)
		m.emit(ctx, rs.id, EventWaveActive, WaveActive{
			Region:        rs.id,
			Wave:          rs.wave,
			ActiveSeconds: rs.remaining.Seconds(),
		})
	case PhaseCooldown:
		rs.totalEndangered += len(rs.endangered)
		rs.totalRescued += len(rs.rescued)
		m.emit(ctx, rs.id, EventWaveEnded, WaveEnded{
			Region:     rs.id,
			Wave:       rs.wave,
			Endangered: len(rs.endangered),
			Rescued:    len(rs.rescued),
		})
	case PhaseCalm:
		m.emit(ctx, rs.id, EventWaveCleared, WaveCleared{
			Region: rs.id,
			Wave:   rs.wave,
		})
	}
}

func (m *Manager) emit(ctx context.Context, regionID, eventType string, data any) {
	err := event.Emit(m.pub, event.RegionSubject(regionID), eventType, data)
	if err != nil {
		log.GetLogger(ctx).WithError(err).Errorf("publishing %s event", eventType)
	}
}

// MarkEndangered records an occupant caught in the open. Only meaningful
// while the darkness is active; any other phase is a no-op, as is an unknown
// region.
func (m *Manager) MarkEndangered(regionID, occupant string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rs, ok := m.regions[regionID]
	if !ok || rs.phase != PhaseActive {
		return
	}
	rs.endangered[occupant] = struct{}{}
}

// MarkRescued records an occupant pulled to safety by another, emitting a
// rescue event. No-op outside the active phase or for unknown regions.
func (m *Manager) MarkRescued(ctx context.Context, regionID, occupant, rescuer string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rs, ok := m.regions[regionID]
	if !ok || rs.phase != PhaseActive {
		return
	}
	rs.rescued[occupant] = struct{}{}
	m.emit(ctx, regionID, EventRescue, Rescue{
		Region:   regionID,
		Wave:     rs.wave,
		Occupant: occupant,
		Rescuer:  rescuer,
	})
}

// RegisterLantern adds a lit lantern to the region's safe-zone index and
// returns its id, generating one when the caller has none. Unknown regions
// return an empty id.
func (m *Manager) RegisterLantern(id, regionID string, x, y float64) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.regions[regionID]; !ok {
		return ""
	}
	if id == "" {
		id = uuid.New().String()
	}
	m.lanterns[id] = &Lantern{ID: id, Region: regionID, X: x, Y: y}
	return id
}

// UnregisterLantern removes a lantern from the safe-zone index.
func (m *Manager) UnregisterLantern(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lanterns, id)
}

// IsPositionSafe reports whether a position sits within the safe radius of
// any lantern in the region. Safety is independent of phase; a lit lantern
// protects at all times.
func (m *Manager) IsPositionSafe(regionID string, x, y float64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rs, ok := m.regions[regionID]
	if !ok {
		return false
	}

	// Linear scan: lantern counts per region are bounded by game design.
	for _, l := range m.lanterns {
		if l.Region != regionID {
			continue
		}
		if l.distanceTo(x, y) <= rs.profile.SafeRadius {
			return true
		}
	}
	return false
}

// ForceActive pushes a region straight into the active phase for operational
// or testing purposes. A non-positive duration uses the configured one. The
// transition emits the same wave-active event as a natural one, so consumers
// cannot tell them apart. An already-active region just has its timer
// extended.
func (m *Manager) ForceActive(ctx context.Context, regionID string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rs, ok := m.regions[regionID]
	if !ok {
		return
	}

	if rs.phase == PhaseActive {
		if duration > 0 {
			rs.remaining = duration
		}
		return
	}

	m.transition(ctx, rs, PhaseActive, duration)
}

// ForceClear drops a region back to calm. An active region emits wave-ended
// first so downstream wave accounting stays consistent; the wave number is
// preserved. The region's lanterns are cleared as part of the reset.
func (m *Manager) ForceClear(ctx context.Context, regionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rs, ok := m.regions[regionID]
	if !ok {
		return
	}

	if rs.phase == PhaseActive {
		m.transition(ctx, rs, PhaseCooldown, 0)
	}
	if rs.phase != PhaseCalm {
		m.transition(ctx, rs, PhaseCalm, 0)
	}

	for id, l := range m.lanterns {
		if l.Region == regionID {
			delete(m.lanterns, id)
		}
	}
}

// Status is a point-in-time snapshot of one region's cycle, safe to hand to
// callers.
type Status struct {
	Region           string      `json:"region"`
	Phase            Phase       `json:"phase"`
	Intensity        float64     `json:"intensity"`
	RemainingSeconds float64     `json:"remaining_seconds"`
	Wave             int         `json:"wave"`
	Danger           DangerLevel `json:"danger"`
	Endangered       []string    `json:"endangered,omitempty"`
	Rescued          []string    `json:"rescued,omitempty"`
	TotalEndangered  int         `json:"total_endangered"`
	TotalRescued     int         `json:"total_rescued"`
	Lanterns         int         `json:"lanterns"`
}

// RegionStatus returns a snapshot of one region, or nil for unknown regions.
func (m *Manager) RegionStatus(regionID string) *Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rs, ok := m.regions[regionID]
	if !ok {
		return nil
	}
	return m.status(rs)
}

// AllRegionStatuses returns snapshots of every region, sorted by region id.
func (m *Manager) AllRegionStatuses() []*Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Status, 0, len(m.regions))
	for _, rs := range m.regions {
		out = append(out, m.status(rs))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}

// Danger returns the region's coarse danger level; unknown regions are
// DangerNone.
func (m *Manager) Danger(regionID string) DangerLevel {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rs, ok := m.regions[regionID]
	if !ok {
		return DangerNone
	}
	return dangerFor(rs.phase, rs.intensity)
}

// status builds a snapshot. Caller holds at least the read lock.
func (m *Manager) status(rs *regionState) *Status {
	remaining := rs.remaining
	if remaining < 0 {
		remaining = 0
	}

	lanterns := 0
	for _, l := range m.lanterns {
		if l.Region == rs.id {
			lanterns++
		}
	}

	return &Status{
		Region:           rs.id,
		Phase:            rs.phase,
		Intensity:        rs.intensity,
		RemainingSeconds: remaining.Seconds(),
		Wave:             rs.wave,
		Danger:           dangerFor(rs.phase, rs.intensity),
		Endangered:       sortedKeys(rs.endangered),
		Rescued:          sortedKeys(rs.rescued),
		TotalEndangered:  rs.totalEndangered,
		TotalRescued:     rs.totalRescued,
		Lanterns:         lanterns,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
