package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGameConfigLoading(t *testing.T) {
	if got := GetGameConfig(); got != Default() {
		t.Fatalf("before loading, GetGameConfig() = %+v, want defaults", got)
	}

	path := filepath.Join(t.TempDir(), "game_config.json")
	payload := []byte(`{"cards_per_player": 12, "turn_duration_seconds": 20}`)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("LoadGameConfig() error: %v", err)
	}

	got := GetGameConfig()
	if got.CardsPerPlayer != 12 {
		t.Errorf("CardsPerPlayer = %d, want 12", got.CardsPerPlayer)
	}
	if got.TurnDurationSeconds != 20 {
		t.Errorf("TurnDurationSeconds = %d, want 20", got.TurnDurationSeconds)
	}
	// Fields absent from the file keep their defaults.
	if got.BotMinDelaySeconds != Default().BotMinDelaySeconds {
		t.Errorf("BotMinDelaySeconds = %d, want default %d", got.BotMinDelaySeconds, Default().BotMinDelaySeconds)
	}
}
