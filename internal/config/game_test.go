package config

import (
	"testing"
	"time"
)

func TestLoadGameDefaults(t *testing.T) {
	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.QueueBotFallback != 10*time.Second || cfg.ForfeitGrace != 30*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg)
	}
	if cfg.BotMoveDelay != 500*time.Millisecond || cfg.BotSearchDepth != 4 {
		t.Fatalf("unexpected bot settings: %+v", cfg)
	}
	if cfg.BotUsername != "Bot" || cfg.MaxUsernameLen != 20 {
		t.Fatalf("unexpected names: %+v", cfg)
	}
}

func TestLoadGameOverrides(t *testing.T) {
	t.Setenv("FORFEIT_GRACE", "5s")
	t.Setenv("BOT_SEARCH_DEPTH", "6")

	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.ForfeitGrace != 5*time.Second || cfg.BotSearchDepth != 6 {
		t.Fatalf("unexpected game config: %+v", cfg)
	}
}

func TestLoadAnalyticsDefaults(t *testing.T) {
	t.Setenv("NATS_URL", "")

	cfg, err := LoadAnalytics()
	if err != nil {
		t.Fatalf("LoadAnalytics() error = %v", err)
	}
	if cfg.NATSURL != "" || cfg.Subject != "game-events" || cfg.QueueGroup != "analytics-group" {
		t.Fatalf("unexpected analytics config: %+v", cfg)
	}
	if cfg.Workers != 2 || cfg.Buffer != 256 || cfg.RetryMax != 3 || cfg.RetryBase != 200*time.Millisecond {
		t.Fatalf("unexpected analytics tuning: %+v", cfg)
	}
}

func TestLoadAppAggregates(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("BOT_USERNAME", "Robo")

	cfg, err := LoadApp()
	if err != nil {
		t.Fatalf("LoadApp() error = %v", err)
	}
	if cfg.Server.HTTPAddr != ":9090" || cfg.Log.Level != "warn" || cfg.Game.BotUsername != "Robo" {
		t.Fatalf("unexpected app config: %+v", cfg)
	}
}
