package config

import "github.com/caarlos0/env/v11"

// LogConfig drives logging.Init. Service tags every line so server and
// bot logs can share a sink.
type LogConfig struct {
	Service     string `env:"LOG_SERVICE" envDefault:"game-server"`
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`
	File        string `env:"LOG_FILE"`
	MaxMB       int    `env:"LOG_MAX_MB" envDefault:"10"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}

type AppConfig struct {
	Server    ServerConfig
	Game      GameConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	gameCfg, err := LoadGame()
	if err != nil {
		return AppConfig{}, err
	}
	analyticsCfg, err := LoadAnalytics()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:    serverCfg,
		Game:      gameCfg,
		Analytics: analyticsCfg,
		Log:       logCfg,
	}, nil
}
