package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables recognised by ApplyEnvironmentOverrides.
const (
	EnvWidth    = "INVADERS_WIDTH"
	EnvHeight   = "INVADERS_HEIGHT"
	EnvFireOdds = "INVADERS_FIRE_ODDS"
	EnvSeed     = "INVADERS_SEED"
	EnvLives    = "INVADERS_LIVES"
	EnvTickRate = "INVADERS_TICK_RATE"
	EnvRenderer = "INVADERS_RENDERER"
	EnvSound    = "INVADERS_SOUND"
)

// ApplyEnvironmentOverrides overwrites config fields from INVADERS_* variables
// and validates the result. Unset variables leave fields untouched.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	var err error
	if config.Arena.Width, err = getEnvFloat(EnvWidth, config.Arena.Width); err != nil {
		return err
	}
	if config.Arena.Height, err = getEnvFloat(EnvHeight, config.Arena.Height); err != nil {
		return err
	}
	if config.GameRules.EnemyFireOdds, err = getEnvFloat(EnvFireOdds, config.GameRules.EnemyFireOdds); err != nil {
		return err
	}
	if config.GameRules.Seed, err = getEnvUint(EnvSeed, config.GameRules.Seed); err != nil {
		return err
	}
	if config.GameRules.StartingLives, err = getEnvInt(EnvLives, config.GameRules.StartingLives); err != nil {
		return err
	}
	if config.Display.TickRate, err = getEnvInt(EnvTickRate, config.Display.TickRate); err != nil {
		return err
	}
	if config.Display.Sound, err = getEnvBool(EnvSound, config.Display.Sound); err != nil {
		return err
	}
	if v := os.Getenv(EnvRenderer); v != "" {
		config.Display.Renderer = v
	}

	return config.Validate()
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
	}
	return f, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
	}
	return i, nil
}

func getEnvUint(key string, fallback uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	u, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
	}
	return u, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
	}
	return b, nil
}
