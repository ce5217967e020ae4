package main

import (
	"bytes"
	"context"
	"os"

	"github.com/kurochkinivan/webpa_collector/internal/render"
	"github.com/urfave/cli/v3"
)

func dumpCmd() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Pretty-print a JSON document for inspection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "input",
				Aliases:   []string{"i"},
				Usage:     "JSON `FILE` to print, or - for stdin",
				Value:     "-",
				Validator: validateInputFlag,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, source, err := readInput(cmd.String("input"))
			if err != nil {
				return err
			}

			return render.Pretty(bytes.NewReader(raw), os.Stdout, source)
		},
	}
}
