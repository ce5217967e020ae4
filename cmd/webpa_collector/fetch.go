package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/kurochkinivan/webpa_collector/internal/webpa"
	"github.com/urfave/cli/v3"
)

func fetchCmd() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch raw device configuration and write it to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "device",
				Aliases:  []string{"d"},
				Usage:    "Device `MAC` identifier",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "names",
				Aliases: []string{"n"},
				Usage:   "Comma-separated parameter `PATHS` filter",
				Value:   "Device.",
			},
			&cli.StringFlag{
				Name:     "base-url",
				Usage:    "Management server base `URL`",
				Sources:  cli.EnvVars("WEBPA_BASE_URL"),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "token",
				Usage:    "Basic authorization `TOKEN`",
				Sources:  cli.EnvVars("WEBPA_TOKEN"),
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "HTTP request timeout",
				Value: 30 * time.Second,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the raw response body to `FILE`",
				Value:   "results.json",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, err := logger(ctx)
			if err != nil {
				return err
			}

			client := webpa.NewClient(log, cmd.String("base-url"), cmd.String("token"), cmd.Duration("timeout"))

			if err := client.FetchConfigToFile(ctx, cmd.String("device"), cmd.String("names"), cmd.String("output")); err != nil {
				return err
			}

			log.InfoContext(ctx, "fetched device configuration",
				slog.String("device_id", cmd.String("device")),
				slog.String("output", cmd.String("output")),
			)

			return nil
		},
	}
}
