package command

import (
	"fmt"
	"time"

	"github.com/duskhaven/go-dusk/internal/tag"
	"github.com/pixil98/go-errors"
)

// TagConfig overrides the default tag session settings. Zero-valued fields
// keep their defaults.
type TagConfig struct {
	MinPlayers  int     `json:"min_players"`
	MaxPlayers  int     `json:"max_players"`
	GameLength  string  `json:"game_length"`
	TagRange    float64 `json:"tag_range"`
	TagCooldown string  `json:"tag_cooldown"`
	BaseScore   int     `json:"base_score"`
	ChainGrowth float64 `json:"chain_growth"`
	ChainMax    float64 `json:"chain_max"`
	TagPenalty  int     `json:"tag_penalty"`
}

func (c *TagConfig) validate() error {
	el := errors.NewErrorList()

	if c.GameLength != "" {
		_, err := time.ParseDuration(c.GameLength)
		if err != nil {
			el.Add(fmt.Errorf("parsing game_length: %w", err))
		}
	}
	if c.TagCooldown != "" {
		_, err := time.ParseDuration(c.TagCooldown)
		if err != nil {
			el.Add(fmt.Errorf("parsing tag_cooldown: %w", err))
		}
	}

	settings, err := c.BuildSettings()
	if err == nil {
		el.Add(settings.Validate())
	}

	return el.Err()
}

func (c *TagConfig) BuildSettings() (tag.Settings, error) {
	settings := tag.DefaultSettings()

	if c.MinPlayers != 0 {
		settings.MinPlayers = c.MinPlayers
	}
	if c.MaxPlayers != 0 {
		settings.MaxPlayers = c.MaxPlayers
	}
	if c.GameLength != "" {
		d, err := time.ParseDuration(c.GameLength)
		if err != nil {
			return settings, fmt.Errorf("parsing game_length: %w", err)
		}
		settings.GameLength = d
	}
	if c.TagRange != 0 {
		settings.TagRange = c.TagRange
	}
	if c.TagCooldown != "" {
		d, err := time.ParseDuration(c.TagCooldown)
		if err != nil {
			return settings, fmt.Errorf("parsing tag_cooldown: %w", err)
		}
		settings.TagCooldown = d
	}
	if c.BaseScore != 0 {
		settings.BaseScore = c.BaseScore
	}
	if c.ChainGrowth != 0 {
		settings.ChainGrowth = c.ChainGrowth
	}
	if c.ChainMax != 0 {
		settings.ChainMax = c.ChainMax
	}
	if c.TagPenalty != 0 {
		settings.TagPenalty = c.TagPenalty
	}

	return settings, nil
}
