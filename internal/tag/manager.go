package tag

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-log"

	"github.com/duskhaven/go-dusk/internal/event"
)

// Rand supplies the random choices the manager makes (initial role-holder,
// replacement on leave). Injected so tests can pin the sequence.
type Rand interface {
	IntN(n int) int
}

type sysRand struct{}

func (sysRand) IntN(n int) int { return rand.IntN(n) }

// Manager owns every live tag session. Sessions are created on demand, one
// live session per region, and removed a grace period after they end. All
// session state is mutated only under the manager's lock, by ticks and by
// the synchronous player commands.
type Manager struct {
	mu       sync.Mutex
	settings Settings

	sessions   map[string]*session
	byOccupant map[string]string
	byRegion   map[string]string

	pub event.Publisher
	rng Rand
	now func() time.Time
}

type ManagerOpt func(*Manager)

// WithClock replaces the time source, letting tests drive session lifecycle.
func WithClock(now func() time.Time) ManagerOpt {
	return func(m *Manager) {
		m.now = now
	}
}

// WithRand replaces the random source used for role-holder selection.
func WithRand(r Rand) ManagerOpt {
	return func(m *Manager) {
		m.rng = r
	}
}

func NewManager(settings Settings, pub event.Publisher, opts ...ManagerOpt) *Manager {
	m := &Manager{
		settings:   settings,
		sessions:   map[string]*session{},
		byOccupant: map[string]string{},
		byRegion:   map[string]string{},
		pub:        pub,
		rng:        sysRand{},
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Tick advances session lifecycle: waiting sessions with enough players
// start, active sessions past their end time wind down, and ended sessions
// are removed once the cleanup grace has passed.
func (m *Manager) Tick(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	// Snapshot keys for safe iteration during removal.
	keys := make([]string, 0, len(m.sessions))
	for k := range m.sessions {
		keys = append(keys, k)
	}

	for _, key := range keys {
		s, ok := m.sessions[key]
		if !ok {
			continue
		}

		switch s.status {
		case StatusWaiting:
			if len(s.players) >= s.minPlayers {
				m.start(ctx, s)
			}
		case StatusActive:
			if !now.Before(s.endTime) {
				m.finish(ctx, s)
			}
		case StatusEnding:
			s.status = StatusEnded
		case StatusEnded:
			if !now.Before(s.endedAt.Add(m.settings.CleanupGrace)) {
				m.remove(s)
			}
		}
	}

	return nil
}

// CreateOrJoin enrolls an occupant in the region's live session, creating one
// when the region has none. Returns the session id, or a rejection when the
// session is full.
func (m *Manager) CreateOrJoin(ctx context.Context, regionID, occupant, name string) (string, Reject) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveSessionForRegion(regionID)
	if s == nil {
		s = &session{
			id:         uuid.New().String(),
			region:     regionID,
			status:     StatusWaiting,
			players:    map[string]*player{},
			minPlayers: m.settings.MinPlayers,
			maxPlayers: m.settings.MaxPlayers,
		}
		m.sessions[s.id] = s
		m.byRegion[regionID] = s.id
		m.emit(ctx, s, EventSessionCreated, SessionCreated{Session: s.id, Region: regionID})
	}

	if reject := m.join(ctx, s, occupant, name); !reject.OK() {
		return "", reject
	}

	return s.id, RejectNone
}

// join adds the occupant to the session, removing them from any other session
// first. Caller holds the lock.
func (m *Manager) join(ctx context.Context, s *session, occupant, name string) Reject {
	if len(s.players) >= s.maxPlayers {
		return RejectSessionFull
	}

	if _, ok := s.players[occupant]; ok {
		return RejectNone
	}

	// No occupant may belong to two sessions at once.
	if otherID, ok := m.byOccupant[occupant]; ok && otherID != s.id {
		if other, ok := m.sessions[otherID]; ok {
			m.removePlayer(ctx, other, occupant)
		}
	}

	s.players[occupant] = &player{
		id:         occupant,
		name:       name,
		chainBonus: chainBase,
		joinedAt:   m.now(),
	}
	m.byOccupant[occupant] = s.id

	m.emit(ctx, s, EventPlayerJoined, PlayerJoined{
		Session: s.id,
		Player:  occupant,
		Name:    name,
		Count:   len(s.players),
	})

	return RejectNone
}

// Leave removes an occupant from a session. A departing role-holder is
// replaced at random; an active session that drops below its minimum ends
// early.
func (m *Manager) Leave(ctx context.Context, sessionID, occupant string) Reject {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return RejectSessionNotFound
	}
	if _, ok := s.players[occupant]; !ok {
		return RejectPlayerMissing
	}

	m.removePlayer(ctx, s, occupant)
	return RejectNone
}

// removePlayer takes the occupant out of the session and repairs the session
// state around the hole. Caller holds the lock.
func (m *Manager) removePlayer(ctx context.Context, s *session, occupant string) {
	wasIt := s.itID == occupant

	delete(s.players, occupant)
	delete(m.byOccupant, occupant)

	m.emit(ctx, s, EventPlayerLeft, PlayerLeft{
		Session: s.id,
		Player:  occupant,
		Count:   len(s.players),
	})

	if s.status == StatusWaiting && len(s.players) == 0 {
		m.remove(s)
		return
	}

	if s.status != StatusActive {
		return
	}

	if len(s.players) < s.minPlayers {
		m.finish(ctx, s)
		return
	}

	if wasIt {
		s.itID = ""
		m.setIt(ctx, s, m.randomPlayer(s), occupant)
	}
}

// AttemptTag resolves one tag attempt. Checks run in a fixed order and any
// failure returns a rejection without mutating state.
func (m *Manager) AttemptTag(ctx context.Context, sessionID, attacker, target string, distance float64) TagResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return TagResult{Reject: RejectSessionNotFound}
	}
	if s.status != StatusActive {
		return TagResult{Reject: RejectNotActive}
	}
	if s.itID != attacker {
		return TagResult{Reject: RejectNotIt}
	}

	atk, ok := s.players[attacker]
	if !ok {
		return TagResult{Reject: RejectAttackerMissing}
	}
	tgt, ok := s.players[target]
	if !ok || attacker == target {
		return TagResult{Reject: RejectTargetMissing}
	}

	if distance > m.settings.TagRange {
		return TagResult{Reject: RejectOutOfRange}
	}

	now := m.now()
	if m.onCooldown(atk, now) {
		return TagResult{Reject: RejectOnCooldown}
	}

	// The attempt stands. Award first, then grow the attacker's chain, then
	// hand the role over; the transfer resets the new holder's chain.
	points := int(math.Round(float64(m.settings.BaseScore) * atk.chainBonus))
	atk.score += points
	atk.tagCount++
	atk.lastTagTime = now
	atk.chainBonus = math.Min(m.settings.ChainMax, atk.chainBonus*m.settings.ChainGrowth)

	tgt.wasTaggedCount++
	tgt.lastTaggedTime = now
	tgt.score -= m.settings.TagPenalty
	if tgt.score < 0 {
		tgt.score = 0
	}

	m.setIt(ctx, s, target, attacker)

	m.emit(ctx, s, EventPlayerTagged, PlayerTagged{
		Session:    s.id,
		Attacker:   attacker,
		Target:     target,
		Points:     points,
		ChainBonus: atk.chainBonus,
	})

	return TagResult{Points: points, ChainBonus: atk.chainBonus, NewItID: target}
}

// onCooldown reports whether the player tagged or was tagged too recently.
// Being tagged starts the window too, so an immediate back-tag of the old
// role-holder is refused.
func (m *Manager) onCooldown(p *player, now time.Time) bool {
	if !p.lastTagTime.IsZero() && now.Sub(p.lastTagTime) < m.settings.TagCooldown {
		return true
	}
	if !p.lastTaggedTime.IsZero() && now.Sub(p.lastTaggedTime) < m.settings.TagCooldown {
		return true
	}
	return false
}

// start moves a waiting session to active and picks the initial role-holder
// uniformly at random. Caller holds the lock.
func (m *Manager) start(ctx context.Context, s *session) {
	now := m.now()
	s.status = StatusActive
	s.startTime = now
	s.endTime = now.Add(m.settings.GameLength)

	it := m.randomPlayer(s)

	log.GetLogger(ctx).Infof("tag session %s started in region %s with %d players", s.id, s.region, len(s.players))
	m.emit(ctx, s, EventGameStarted, GameStarted{
		Session:       s.id,
		Region:        s.region,
		It:            it,
		LengthSeconds: m.settings.GameLength.Seconds(),
	})

	m.setIt(ctx, s, it, "")
}

// setIt transfers the role to the given player, resetting their chain bonus.
// Caller holds the lock.
func (m *Manager) setIt(ctx context.Context, s *session, id, previous string) {
	if prev, ok := s.players[previous]; ok {
		prev.isIt = false
	}

	p, ok := s.players[id]
	if !ok {
		return
	}
	p.isIt = true
	p.chainBonus = chainBase
	s.itID = id
	s.roleHistory = append(s.roleHistory, id)

	m.emit(ctx, s, EventItChanged, ItChanged{Session: s.id, It: id, Previous: previous})
}

// finish winds an active session down, publishing final standings. The
// session stays queryable until the cleanup grace passes. Caller holds the
// lock.
func (m *Manager) finish(ctx context.Context, s *session) {
	s.status = StatusEnding
	s.endedAt = m.now()

	if it, ok := s.players[s.itID]; ok {
		it.isIt = false
	}
	s.itID = ""

	m.emit(ctx, s, EventGameEnded, GameEnded{
		Session:   s.id,
		Region:    s.region,
		Standings: m.standings(s),
	})
}

// remove deletes the session and every index entry pointing at it. Caller
// holds the lock.
func (m *Manager) remove(s *session) {
	for id := range s.players {
		if m.byOccupant[id] == s.id {
			delete(m.byOccupant, id)
		}
	}
	if m.byRegion[s.region] == s.id {
		delete(m.byRegion, s.region)
	}
	delete(m.sessions, s.id)
}

// standings ranks players by score, then tag count, then join time. Join
// time is the documented tie-break so rankings are deterministic. Caller
// holds the lock.
func (m *Manager) standings(s *session) []Standing {
	players := make([]*player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.tagCount != b.tagCount {
			return a.tagCount > b.tagCount
		}
		if !a.joinedAt.Equal(b.joinedAt) {
			return a.joinedAt.Before(b.joinedAt)
		}
		return a.id < b.id
	})

	out := make([]Standing, len(players))
	for i, p := range players {
		out[i] = Standing{
			Place:    i + 1,
			Player:   p.id,
			Name:     p.name,
			Score:    p.score,
			TagCount: p.tagCount,
		}
	}
	return out
}

// randomPlayer picks a player id uniformly at random. Ids are sorted first
// so an injected random source yields a stable choice. Caller holds the
// lock.
func (m *Manager) randomPlayer(s *session) string {
	if len(s.players) == 0 {
		return ""
	}
	ids := make([]string, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids[m.rng.IntN(len(ids))]
}

// liveSessionForRegion returns the region's waiting or active session, if
// any. Caller holds the lock.
func (m *Manager) liveSessionForRegion(regionID string) *session {
	id, ok := m.byRegion[regionID]
	if !ok {
		return nil
	}
	s, ok := m.sessions[id]
	if !ok || (s.status != StatusWaiting && s.status != StatusActive) {
		return nil
	}
	return s
}

func (m *Manager) emit(ctx context.Context, s *session, eventType string, data any) {
	err := event.Emit(m.pub, event.SessionSubject(s.id), eventType, data)
	if err != nil {
		log.GetLogger(ctx).WithError(err).Errorf("publishing %s event", eventType)
	}
}

// Session returns a snapshot of the session, or nil if unknown.
func (m *Manager) Session(id string) *SessionView {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	return m.view(s)
}

// SessionForOccupant returns a snapshot of the session the occupant belongs
// to, or nil.
func (m *Manager) SessionForOccupant(occupant string) *SessionView {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byOccupant[occupant]
	if !ok {
		return nil
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	return m.view(s)
}

// SessionForRegion returns a snapshot of the region's live session, or nil.
func (m *Manager) SessionForRegion(regionID string) *SessionView {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveSessionForRegion(regionID)
	if s == nil {
		return nil
	}
	return m.view(s)
}

// AllSessions returns snapshots of every tracked session, sorted by region.
func (m *Manager) AllSessions() []*SessionView {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*SessionView, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, m.view(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// view builds a snapshot. Caller holds the lock.
func (m *Manager) view(s *session) *SessionView {
	players := make([]PlayerView, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p.view())
	}
	sort.Slice(players, func(i, j int) bool {
		if !players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].JoinedAt.Before(players[j].JoinedAt)
		}
		return players[i].ID < players[j].ID
	})

	return &SessionView{
		ID:         s.id,
		Region:     s.region,
		Status:     s.status,
		StartTime:  s.startTime,
		EndTime:    s.endTime,
		ItID:       s.itID,
		Players:    players,
		MinPlayers: s.minPlayers,
		MaxPlayers: s.maxPlayers,
	}
}
