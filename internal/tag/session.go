package tag

import "time"

// Status is a session's lifecycle state. Forward-only: waiting, active,
// ending, ended. The ending status exists so the transport layer can flush
// final standings before the session is cleaned up.
type Status int

const (
	StatusWaiting Status = iota
	StatusActive
	StatusEnding
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusActive:
		return "active"
	case StatusEnding:
		return "ending"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// player is one enrolled occupant's in-session state.
type player struct {
	id   string
	name string

	isIt           bool
	tagCount       int
	wasTaggedCount int
	score          int
	chainBonus     float64

	lastTagTime    time.Time
	lastTaggedTime time.Time
	joinedAt       time.Time
}

// session is one live minigame instance, scoped to a region. At most one
// session per region is live at a time.
type session struct {
	id     string
	region string
	status Status

	startTime time.Time
	endTime   time.Time
	endedAt   time.Time

	players     map[string]*player
	itID        string
	roleHistory []string

	minPlayers int
	maxPlayers int
}

// PlayerView is a read-only snapshot of one player, safe to hand out.
type PlayerView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	IsIt           bool      `json:"is_it"`
	TagCount       int       `json:"tag_count"`
	WasTaggedCount int       `json:"was_tagged_count"`
	Score          int       `json:"score"`
	ChainBonus     float64   `json:"chain_bonus"`
	JoinedAt       time.Time `json:"joined_at"`
}

// SessionView is a read-only snapshot of a session.
type SessionView struct {
	ID         string       `json:"id"`
	Region     string       `json:"region"`
	Status     Status       `json:"status"`
	StartTime  time.Time    `json:"start_time,omitzero"`
	EndTime    time.Time    `json:"end_time,omitzero"`
	ItID       string       `json:"it_id,omitempty"`
	Players    []PlayerView `json:"players"`
	MinPlayers int          `json:"min_players"`
	MaxPlayers int          `json:"max_players"`
}

func (p *player) view() PlayerView {
	return PlayerView{
		ID:             p.id,
		Name:           p.name,
		IsIt:           p.isIt,
		TagCount:       p.tagCount,
		WasTaggedCount: p.wasTaggedCount,
		Score:          p.score,
		ChainBonus:     p.chainBonus,
		JoinedAt:       p.joinedAt,
	}
}
