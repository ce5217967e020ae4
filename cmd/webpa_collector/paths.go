package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kurochkinivan/webpa_collector/internal/datamodel"
	"github.com/urfave/cli/v3"
)

func pathsCmd() *cli.Command {
	return &cli.Command{
		Name:  "paths",
		Usage: "Look up implemented parameter paths in a translated data model",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "schema",
				Aliases:   []string{"s"},
				Usage:     "Translated data-model `JSON` file",
				Required:  true,
				Validator: validateFile,
			},
			&cli.StringFlag{
				Name:     "path",
				Aliases:  []string{"p"},
				Usage:    "Parameter `PATH`; instance numbers and * match any instance, a trailing dot matches the subtree",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			index, err := datamodel.IndexFromFile(cmd.String("schema"))
			if err != nil {
				return err
			}

			found, err := index.FindParams(cmd.String("path"))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, path := range found {
				access, err := index.Access(path)
				if err != nil {
					return err
				}

				fmt.Fprintf(w, "%s\t%s\n", path, access)
			}

			return w.Flush()
		},
	}
}
