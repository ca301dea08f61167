package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig carries the tunable game parameters.
type GameConfig struct {
	// CardsPerPlayer is the deal size per seat. The full game deals 13;
	// shorter variants deal 12 and leave the remainder undealt.
	CardsPerPlayer      int `json:"cards_per_player"`
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotMinDelaySeconds/BotMaxDelaySeconds bound the AI "thinking" delay.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the built-in configuration.
func Default() GameConfig {
	return GameConfig{
		CardsPerPlayer:      13,
		TurnDurationSeconds: 30,
		BotMinDelaySeconds:  1,
		BotMaxDelaySeconds:  3,
	}
}

// LoadGameConfig loads the game configuration from the given path. Missing
// fields fall back to defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Default()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or defaults if no file was
// loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}
