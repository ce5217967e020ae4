package main

import (
	"context"

	"github.com/kurochkinivan/webpa_collector/internal/render"
	"github.com/kurochkinivan/webpa_collector/internal/transform"
	"github.com/urfave/cli/v3"
)

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert a raw fetch payload into a flat (or nested) parameter document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "input",
				Aliases:   []string{"i"},
				Usage:     "Raw JSON `FILE` produced by fetch, or - for stdin",
				Value:     "-",
				Validator: validateInputFlag,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the converted document to `FILE`, - for stdout",
				Value:   "-",
			},
			&cli.BoolFlag{
				Name:  "nested",
				Usage: "Emit the dotted-path tree instead of the flat map",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Indent the output",
				Value: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, source, err := readInput(cmd.String("input"))
			if err != nil {
				return err
			}

			flat, err := transform.Flatten(raw, source)
			if err != nil {
				return err
			}

			var doc any = flat
			if cmd.Bool("nested") {
				doc = transform.Nest(flat)
			}

			data, err := render.MarshalDocument(doc, cmd.Bool("pretty"))
			if err != nil {
				return err
			}

			return writeOutput(cmd.String("output"), data)
		},
	}
}

func validateInputFlag(path string) error {
	if path == "-" {
		return nil
	}

	return validateFile(path)
}
