package tag

// Event types published on a session's subject.
const (
	EventSessionCreated = "session-created"
	EventPlayerJoined   = "player-joined"
	EventPlayerLeft     = "player-left"
	EventGameStarted    = "game-started"
	EventPlayerTagged   = "player-tagged"
	EventItChanged      = "it-changed"
	EventGameEnded      = "game-ended"
)

type SessionCreated struct {
	Session string `json:"session"`
	Region  string `json:"region"`
}

type PlayerJoined struct {
	Session string `json:"session"`
	Player  string `json:"player"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

type PlayerLeft struct {
	Session string `json:"session"`
	Player  string `json:"player"`
	Count   int    `json:"count"`
}

type GameStarted struct {
	Session       string  `json:"session"`
	Region        string  `json:"region"`
	It            string  `json:"it"`
	LengthSeconds float64 `json:"length_seconds"`
}

type PlayerTagged struct {
	Session    string  `json:"session"`
	Attacker   string  `json:"attacker"`
	Target     string  `json:"target"`
	Points     int     `json:"points"`
	ChainBonus float64 `json:"chain_bonus"`
}

type ItChanged struct {
	Session  string `json:"session"`
	It       string `json:"it"`
	Previous string `json:"previous,omitempty"`
}

// Standing is one row of the final rankings.
type Standing struct {
	Place    int    `json:"place"`
	Player   string `json:"player"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	TagCount int    `json:"tag_count"`
}

type GameEnded struct {
	Session   string     `json:"session"`
	Region    string     `json:"region"`
	Standings []Standing `json:"standings"`
}
