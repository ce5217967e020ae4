package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

type Config struct {
	WebPA
	PostgreSQL
	HTTP
}

type WebPA struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	TwinNames     string
	TwinCacheTTL  time.Duration
	DataModelFile string
}

type PostgreSQL struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

type HTTP struct {
	Host         string
	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load(cmd *cli.Command) *Config {
	return &Config{
		WebPA: WebPA{
			BaseURL:       cmd.String("base-url"),
			Token:         cmd.String("token"),
			Timeout:       cmd.Duration("timeout"),
			TwinNames:     cmd.String("twin-names"),
			TwinCacheTTL:  cmd.Duration("twin-cache-ttl"),
			DataModelFile: cmd.String("data-model"),
		},
		PostgreSQL: PostgreSQL{
			Host:     cmd.String("pg-host"),
			Port:     cmd.String("pg-port"),
			Username: cmd.String("pg-username"),
			Password: cmd.String("pg-password"),
			DBName:   cmd.String("pg-dbname"),
		},
		HTTP: HTTP{
			Host:         cmd.String("http-host"),
			Port:         cmd.String("http-port"),
			IdleTimeout:  cmd.Duration("http-idle-timeout"),
			ReadTimeout:  cmd.Duration("http-read-timeout"),
			WriteTimeout: cmd.Duration("http-write-timeout"),
		},
	}
}
