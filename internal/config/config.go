package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type CommissionConfig struct {
	Env           string `yaml:"env" env-default:"local"`
	HTTPServer    `yaml:"http_server"`
	MetricsServer `yaml:"metrics_server"`
	CommissionDB  `yaml:"commission_db"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka-service"`
	Commission    `yaml:"commission"`
	PayoutPolicy  `yaml:"payout_policy"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type MetricsServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"9090"`
}

type CommissionDB struct {
	Dsn            string `yaml:"dsn" env:"COMMISSION_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type KafkaService struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	EventsTopic string `yaml:"events_topic" env-default:"commission-events"`
	Enabled     bool   `yaml:"enabled" env-default:"false"`
}

// Commission carries the injectable rate schedule. Defaults mirror the
// production schedule: 8% below 500 lifetime paid users, 12% at or
// above, 3% CMO override.
type Commission struct {
	BaseRate          float64 `yaml:"base_rate" env-default:"0.08"`
	ElevatedRate      float64 `yaml:"elevated_rate" env-default:"0.12"`
	ElevatedThreshold int64   `yaml:"elevated_threshold" env-default:"500"`
	CMOOverrideRate   float64 `yaml:"cmo_override_rate" env-default:"0.03"`
}

// PayoutPolicy controls the operator confirmation challenge for marking
// payouts paid.
type PayoutPolicy struct {
	ConfirmationThreshold float64       `yaml:"confirmation_threshold" env-default:"1000"`
	ConfirmationTTL       time.Duration `yaml:"confirmation_ttl" env-default:"10m"`
}

func MustLoad() *CommissionConfig {
	configPath := os.Getenv("COMMISSION_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("COMMISSION_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg CommissionConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
