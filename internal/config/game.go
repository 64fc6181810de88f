package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type GameConfig struct {
	QueueBotFallback time.Duration `env:"QUEUE_BOT_FALLBACK" envDefault:"10s"`
	ForfeitGrace     time.Duration `env:"FORFEIT_GRACE" envDefault:"30s"`
	BotMoveDelay     time.Duration `env:"BOT_MOVE_DELAY" envDefault:"500ms"`
	BotSearchDepth   int           `env:"BOT_SEARCH_DEPTH" envDefault:"4"`
	BotUsername      string        `env:"BOT_USERNAME" envDefault:"Bot"`
	MaxUsernameLen   int           `env:"MAX_USERNAME_LEN" envDefault:"20"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	err := env.Parse(&cfg)
	return cfg, err
}
