package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type AnalyticsConfig struct {
	// NATSURL empty disables publishing.
	NATSURL    string        `env:"NATS_URL"`
	Subject    string        `env:"ANALYTICS_SUBJECT" envDefault:"game-events"`
	Workers    int           `env:"ANALYTICS_WORKERS" envDefault:"2"`
	Buffer     int           `env:"ANALYTICS_BUFFER" envDefault:"256"`
	RetryMax   int           `env:"ANALYTICS_RETRY_MAX" envDefault:"3"`
	RetryBase  time.Duration `env:"ANALYTICS_RETRY_BASE" envDefault:"200ms"`
	Consumer   bool          `env:"ANALYTICS_CONSUMER" envDefault:"false"`
	QueueGroup string        `env:"ANALYTICS_QUEUE_GROUP" envDefault:"analytics-group"`
}

func LoadAnalytics() (AnalyticsConfig, error) {
	var cfg AnalyticsConfig
	err := env.Parse(&cfg)
	return cfg, err
}
