package main

import (
	"context"

	"github.com/kurochkinivan/webpa_collector/internal/datamodel"
	"github.com/urfave/cli/v3"
)

func translateCmd() *cli.Command {
	return &cli.Command{
		Name:  "translate",
		Usage: "Translate a TR-181 data-model XML document into JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "input",
				Aliases:   []string{"i"},
				Usage:     "Data-model `XML` file",
				Required:  true,
				Validator: validateFile,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the JSON document to `FILE`, - for stdout",
				Value:   "-",
			},
			&cli.BoolFlag{
				Name:  "strip-text",
				Usage: "Drop whitespace-only text nodes",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "strip-namespace",
				Usage: "Drop namespace prefixes from element and attribute names",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Indent the output",
				Value: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			xmlData, source, err := readInput(cmd.String("input"))
			if err != nil {
				return err
			}

			data, err := datamodel.Translate(xmlData, source, datamodel.TranslateOptions{
				StripText:      cmd.Bool("strip-text"),
				StripNamespace: cmd.Bool("strip-namespace"),
				Pretty:         cmd.Bool("pretty"),
			})
			if err != nil {
				return err
			}

			return writeOutput(cmd.String("output"), data)
		},
	}
}
