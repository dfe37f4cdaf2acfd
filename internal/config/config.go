package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type NegotiationConfig struct {
	Env           string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer    `yaml:"http_server"`
	NegotiationDB `yaml:"negotiation_db"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka-service"`
	Negotiation   `yaml:"negotiation"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8084"`
}

type NegotiationDB struct {
	Dsn            string `yaml:"dsn" env:"NEGOTIATION_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Enabled bool   `yaml:"enabled" env-default:"true"`
}

type Negotiation struct {
	SessionTTL         time.Duration `yaml:"session_ttl" env-default:"15m"`
	TokenTTL           time.Duration `yaml:"token_ttl" env-default:"24h"`
	OfferLimit         int           `yaml:"offer_limit" env-default:"10"`
	OfferWindow        time.Duration `yaml:"offer_window" env-default:"1m"`
	OverstockThreshold int           `yaml:"overstock_threshold" env-default:"50"`
	ClearanceBonusPct  float64       `yaml:"clearance_bonus_pct" env-default:"5"`
	MinCounterStepPct  float64       `yaml:"min_counter_step_pct" env-default:"0.5"`
	BaselineConversion float64       `yaml:"baseline_conversion_rate" env-default:"0.32"`
	SweepInterval      time.Duration `yaml:"sweep_interval" env-default:"1m"`
}

func MustLoad() *NegotiationConfig {

	// Processing env config variable and file
	configPath := os.Getenv("NEGOTIATION_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("NEGOTIATION_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg NegotiationConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
