// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// GameConfig contains configuration for one invaders world
type GameConfig struct {
	Arena     ArenaConfig     `json:"arena"`
	Formation FormationConfig `json:"formation"`
	Shields   ShieldConfig    `json:"shields"`
	Stars     StarConfig      `json:"stars"`
	GameRules GameRules       `json:"gameRules"`
	Display   DisplayConfig   `json:"display"`
}

// ArenaConfig is the canvas size in arena units
type ArenaConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FormationConfig describes the invader grid. Row i uses RowVariants[i].
type FormationConfig struct {
	RowVariants   []string `json:"rowVariants"`
	Columns       int      `json:"columns"`
	ColumnSpacing float64  `json:"columnSpacing"`
	TopY          float64  `json:"topY"`
	RowSpacing    float64  `json:"rowSpacing"`
	VelocityX     float64  `json:"velocityX"`
}

// ShieldConfig describes the shield clusters along the bottom of the arena
type ShieldConfig struct {
	Count          int     `json:"count"`
	FirstFraction  float64 `json:"firstFraction"`
	FractionStep   float64 `json:"fractionStep"`
	HeightFraction float64 `json:"heightFraction"`
	Radius         float64 `json:"radius"`
	PieceSpacing   float64 `json:"pieceSpacing"`
}

// StarConfig describes the decorative starfield
type StarConfig struct {
	Count    int     `json:"count"`
	MaxSpeed float64 `json:"maxSpeed"`
}

// GameRules contains the tunable rules of play
type GameRules struct {
	StartingLives int `json:"startingLives"`
	// EnemyFireOdds is N in the per-invader, per-tick 1-in-N fire chance.
	EnemyFireOdds  float64 `json:"enemyFireOdds"`
	BulletSpeed    float64 `json:"bulletSpeed"`
	SpeedIncrement float64 `json:"speedIncrement"`
	DefenderSpeed  float64 `json:"defenderSpeed"`
	// Seed feeds the world's random source. Zero picks a seed at startup.
	Seed uint64 `json:"seed"`
}

// DisplayConfig configures the interactive drivers
type DisplayConfig struct {
	TickRate    int     `json:"tickRate"`
	Renderer    string  `json:"renderer"`
	Sound       bool    `json:"sound"`
	AutoReverse bool    `json:"autoReverse"`
	WallMargin  float64 `json:"wallMargin"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the classic 5x11 formation on an 800x600 arena
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Formation: FormationConfig{
			RowVariants:   []string{"invader", "soldier", "soldier", "grunt", "grunt"},
			Columns:       11,
			ColumnSpacing: 50,
			TopY:          80,
			RowSpacing:    40,
			VelocityX:     0.3,
		},
		Shields: ShieldConfig{
			Count:          5,
			FirstFraction:  0.07,
			FractionStep:   0.2,
			HeightFraction: 0.8,
			Radius:         15,
			PieceSpacing:   5,
		},
		Stars: StarConfig{
			Count:    40,
			MaxSpeed: 8,
		},
		GameRules: GameRules{
			StartingLives:  2,
			EnemyFireOdds:  5000,
			BulletSpeed:    5,
			SpeedIncrement: 0.02,
			DefenderSpeed:  4,
		},
		Display: DisplayConfig{
			TickRate:    60,
			Renderer:    "terminal",
			Sound:       false,
			AutoReverse: true,
			WallMargin:  20,
		},
	}
}

var knownVariants = map[string]bool{
	"invader": true,
	"soldier": true,
	"grunt":   true,
}

// Validate reports every problem found in the configuration, each wrapped
// with ErrInvalidConfig.
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	finite := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return false
			}
		}
		return true
	}
	// NaN fails both comparisons.
	fraction := func(v float64) bool { return v >= 0 && v <= 1 }

	check(c.Arena.Width > 0 && finite(c.Arena.Width), "arena width must be positive and finite, got %v", c.Arena.Width)
	check(c.Arena.Height > 0 && finite(c.Arena.Height), "arena height must be positive and finite, got %v", c.Arena.Height)

	check(len(c.Formation.RowVariants) > 0, "formation needs at least one row")
	for i, v := range c.Formation.RowVariants {
		check(knownVariants[v], "formation row %d has unknown variant %q", i, v)
	}
	check(c.Formation.Columns > 0, "formation columns must be positive, got %d", c.Formation.Columns)
	check(c.Formation.ColumnSpacing > 0 && finite(c.Formation.ColumnSpacing),
		"formation column spacing must be positive and finite, got %v", c.Formation.ColumnSpacing)
	check(c.Formation.RowSpacing >= 0 && finite(c.Formation.RowSpacing),
		"formation row spacing must not be negative, got %v", c.Formation.RowSpacing)
	check(finite(c.Formation.TopY, c.Formation.VelocityX), "formation top and velocity must be finite, got %v and %v",
		c.Formation.TopY, c.Formation.VelocityX)

	s := c.Shields
	check(s.Count >= 0, "shield count must not be negative, got %d", s.Count)
	check(s.PieceSpacing > 0 && finite(s.PieceSpacing), "shield piece spacing must be positive and finite, got %v", s.PieceSpacing)
	check(s.Radius >= 0 && finite(s.Radius), "shield radius must not be negative, got %v", s.Radius)
	check(fraction(s.HeightFraction), "shield height fraction must be within [0, 1], got %v", s.HeightFraction)
	check(fraction(s.FirstFraction), "shield first fraction must be within [0, 1], got %v", s.FirstFraction)
	check(s.FractionStep >= 0 && finite(s.FractionStep), "shield fraction step must not be negative, got %v", s.FractionStep)
	if s.Count > 0 {
		last := s.FirstFraction + float64(s.Count-1)*s.FractionStep
		check(last <= 1, "shield %d sits past the right edge at fraction %v", s.Count, last)
	}

	check(c.Stars.Count >= 0, "star count must not be negative, got %d", c.Stars.Count)
	check(c.Stars.MaxSpeed >= 0 && finite(c.Stars.MaxSpeed), "star max speed must not be negative, got %v", c.Stars.MaxSpeed)

	r := c.GameRules
	check(r.StartingLives > 0, "starting lives must be positive, got %d", r.StartingLives)
	check(r.EnemyFireOdds >= 1 && finite(r.EnemyFireOdds), "enemy fire odds must be at least 1 and finite, got %v", r.EnemyFireOdds)
	check(r.BulletSpeed > 0 && finite(r.BulletSpeed), "bullet speed must be positive and finite, got %v", r.BulletSpeed)
	check(r.SpeedIncrement >= 0 && finite(r.SpeedIncrement), "speed increment must not be negative, got %v", r.SpeedIncrement)
	check(r.DefenderSpeed >= 0 && finite(r.DefenderSpeed), "defender speed must not be negative, got %v", r.DefenderSpeed)

	check(c.Display.TickRate > 0, "tick rate must be positive, got %d", c.Display.TickRate)
	check(c.Display.Renderer == "terminal" || c.Display.Renderer == "engo",
		"renderer must be 'terminal' or 'engo', got %q", c.Display.Renderer)
	check(c.Display.WallMargin >= 0 && finite(c.Display.WallMargin), "wall margin must not be negative, got %v", c.Display.WallMargin)

	return errors.Join(errs...)
}
