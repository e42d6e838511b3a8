package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode      bool          `env:"TEST_MODE" envDefault:"false"`
	Address         string        `env:"ADDRESS" envDefault:"0.0.0.0:9090"`
	PostgresqlURL   string        `env:"POSTGRESQL_URL,required"`
	RedisURL        string        `env:"REDIS_URL,required"`
	AwsRegion       string        `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey    string        `env:"AWS_ACCESS_KEY" envDefault:""`
	AwsSecretKey    string        `env:"AWS_SECRET_KEY" envDefault:""`
	SenderEmail     string        `env:"SENDER_EMAIL" envDefault:"reminders@medremind.app"`
	DispatchTimeout time.Duration `env:"DISPATCH_TIMEOUT" envDefault:"10s"`
	Timezone        string        `env:"TIMEZONE" envDefault:"UTC"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
