package main

import (
	"context"
	"time"

	"github.com/kurochkinivan/webpa_collector/internal/app"
	"github.com/kurochkinivan/webpa_collector/internal/config"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	var configFile string

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the device twin and snapshot archive HTTP service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Validator:   validateConfig,
				Usage:       "Load configuration from `FILE`",
				Destination: &configFile,
			},
			&cli.StringFlag{
				Name:     "base-url",
				Usage:    "Management server base `URL`",
				Sources:  cli.NewValueSourceChain(cli.EnvVar("WEBPA_BASE_URL"), yaml.YAML("webpa.base_url", altsrc.NewStringPtrSourcer(&configFile))),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "token",
				Usage:    "Basic authorization `TOKEN`",
				Sources:  cli.NewValueSourceChain(cli.EnvVar("WEBPA_TOKEN"), yaml.YAML("webpa.token", altsrc.NewStringPtrSourcer(&configFile))),
				Required: true,
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Management server request timeout",
				Value:   30 * time.Second,
				Sources: cli.NewValueSourceChain(yaml.YAML("webpa.timeout", altsrc.NewStringPtrSourcer(&configFile))),
			},
			&cli.StringFlag{
				Name:    "twin-names",
				Usage:   "Default parameter `PATHS` filter for device twins",
				Sources: cli.NewValueSourceChain(yaml.YAML("webpa.twin_names", altsrc.NewStringPtrSourcer(&configFile))),
			},
			&cli.DurationFlag{
				Name:    "twin-cache-ttl",
				Usage:   "How long a device twin is served from cache",
				Value:   10 * time.Second,
				Sources: cli.NewValueSourceChain(yaml.YAML("webpa.twin_cache_ttl", altsrc.NewStringPtrSourcer(&configFile))),
			},
			&cli.StringFlag{
				Name:    "data-model",
				Usage:   "Translated data-model `JSON` used to validate requested paths",
				Sources: cli.NewValueSourceChain(yaml.YAML("webpa.data_model", altsrc.NewStringPtrSourcer(&configFile))),
			},
			&cli.StringFlag{
				Name:     "pg-host",
				Usage:    "Set PostgreSQL host",
				Value:    "localhost",
				Sources:  cli.NewValueSourceChain(yaml.YAML("postgresql.host", altsrc.NewStringPtrSourcer(&configFile))),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "pg-port",
				Usage:    "Set PostgreSQL port",
				Value:    "5432",
				Sources:  cli.NewValueSourceChain(yaml.YAML("postgresql.port", altsrc.NewStringPtrSourcer(&configFile))),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "pg-username",
				Usage:    "Set PostgreSQL username",
				Sources:  cli.NewValueSourceChain(yaml.YAML("postgresql.username", altsrc.NewStringPtrSourcer(&configFile))),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "pg-password",
				Usage:    "Set PostgreSQL password",
				Sources:  cli.NewValueSourceChain(yaml.YAML("postgresql.password", altsrc.NewStringPtrSourcer(&configFile))),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "pg-dbname",
				Usage:    "Set PostgreSQL database name",
				Value:    "webpa_collector",
				Sources:  cli.NewValueSourceChain(yaml.YAML("postgresql.dbname", altsrc.NewStringPtrSourcer(&configFile))),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "http-host",
				Usage:   "Set HTTP server host",
				Value:   "localhost",
				Sources: cli.NewValueSourceChain(yaml.YAML("http.host", altsrc.NewStringPtrSourcer(&configFile))),
			},
			&cli.StringFlag{
				Name:    "http-port",
				Usage:   "Set HTTP server port",
				Value:   "8080",
				Sources: cli.NewValueSourceChain(yaml.YAML("http.port", altsrc.NewStringPtrSourcer(&configFile))),
			},
			&cli.DurationFlag{
				Name:    "http-idle-timeout",
				Usage:   "Set HTTP server idle timeout",
				Value:   1 * time.Minute,
				Sources: cli.NewValueSourceChain(yaml.YAML("http.idle_timeout", altsrc.NewStringPtrSourcer(&configFile))),
			},
			&cli.DurationFlag{
				Name:    "http-read-timeout",
				Usage:   "Set HTTP server read timeout",
				Value:   15 * time.Second,
				Sources: cli.NewValueSourceChain(yaml.YAML("http.read_timeout", altsrc.NewStringPtrSourcer(&configFile))),
			},
			&cli.DurationFlag{
				Name:    "http-write-timeout",
				Usage:   "Set HTTP server write timeout",
				Value:   15 * time.Second,
				Sources: cli.NewValueSourceChain(yaml.YAML("http.write_timeout", altsrc.NewStringPtrSourcer(&configFile))),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, err := logger(ctx)
			if err != nil {
				return err
			}

			cfg := config.Load(cmd)

			return app.New(log, cfg).Run(ctx)
		},
	}
}
