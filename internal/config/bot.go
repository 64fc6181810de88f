package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type BotConfig struct {
	WSURL       string        `env:"WS_URL" envDefault:"ws://localhost:8080/ws"`
	Name        string        `env:"BOT_NAME" envDefault:"dumb-bot"`
	Games       int           `env:"BOT_GAMES" envDefault:"1"`
	SearchDepth int           `env:"BOT_SEARCH_DEPTH" envDefault:"4"`
	ThinkDelay  time.Duration `env:"BOT_THINK_DELAY" envDefault:"0s"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
