package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	Bot      Bot
	Postgres Postgres
	Deals    Deals
	Server   Server
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"deals-bot"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Bot struct {
	Token string `env:"BOT_TOKEN,required" json:"-"`
}

type Server struct {
	ListenAddr       string `env:"SERVER_LISTEN_ADDR" envDefault:":8080"`
	MetricListenAddr string `env:"METRIC_LISTEN_ADDR" envDefault:":9090"`
	ProbeListenAddr  string `env:"PROBE_LISTEN_ADDR" envDefault:":8091"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
