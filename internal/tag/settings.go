package tag

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

// Settings holds the tunables for every session the manager runs.
type Settings struct {
	MinPlayers int
	MaxPlayers int
	GameLength time.Duration

	TagRange    float64
	TagCooldown time.Duration

	BaseScore   int
	ChainGrowth float64
	ChainMax    float64
	TagPenalty  int

	// CleanupGrace is how long an ended session stays queryable so final
	// standings can be delivered before the registry entry is removed.
	CleanupGrace time.Duration
}

// chainBase is every player's starting chain bonus.
const chainBase = 1.0

func DefaultSettings() Settings {
	return Settings{
		MinPlayers:   2,
		MaxPlayers:   8,
		GameLength:   5 * time.Minute,
		TagRange:     80,
		TagCooldown:  3 * time.Second,
		BaseScore:    10,
		ChainGrowth:  1.25,
		ChainMax:     3.0,
		TagPenalty:   5,
		CleanupGrace: 10 * time.Second,
	}
}

func (s Settings) Validate() error {
	el := errors.NewErrorList()

	if s.MinPlayers < 2 {
		el.Add(fmt.Errorf("min_players must be at least 2"))
	}
	if s.MaxPlayers < s.MinPlayers {
		el.Add(fmt.Errorf("max_players must be at least min_players"))
	}
	if s.GameLength <= 0 {
		el.Add(fmt.Errorf("game_length must be positive"))
	}
	if s.TagRange <= 0 {
		el.Add(fmt.Errorf("tag_range must be positive"))
	}
	if s.TagCooldown < 0 {
		el.Add(fmt.Errorf("tag_cooldown must be non-negative"))
	}
	if s.BaseScore <= 0 {
		el.Add(fmt.Errorf("base_score must be positive"))
	}
	if s.ChainGrowth < 1 {
		el.Add(fmt.Errorf("chain_growth must be at least 1"))
	}
	if s.ChainMax < chainBase {
		el.Add(fmt.Errorf("chain_max must be at least %v", chainBase))
	}
	if s.TagPenalty < 0 {
		el.Add(fmt.Errorf("tag_penalty must be non-negative"))
	}
	if s.CleanupGrace < 0 {
		el.Add(fmt.Errorf("cleanup_grace must be non-negative"))
	}

	return el.Err()
}
