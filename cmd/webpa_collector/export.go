package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kurochkinivan/webpa_collector/internal/domain"
	"github.com/kurochkinivan/webpa_collector/internal/report"
	"github.com/urfave/cli/v3"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a converted document as a TSV, CSV or PDF report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "input",
				Aliases:   []string{"i"},
				Usage:     "Converted (flat) JSON `FILE`, or - for stdin",
				Value:     "-",
				Validator: validateInputFlag,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the report to `FILE`, - for stdout (tsv/csv only)",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:      "format",
				Aliases:   []string{"f"},
				Usage:     "Report format: tsv, csv or pdf",
				Value:     "tsv",
				Validator: validateFormat,
			},
			&cli.StringFlag{
				Name:    "device",
				Aliases: []string{"d"},
				Usage:   "Device `MAC` identifier shown in the PDF header",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, source, err := readInput(cmd.String("input"))
			if err != nil {
				return err
			}

			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return &domain.MalformedInputError{Source: source, Err: err}
			}

			entries, err := report.EntriesFromDocument(doc)
			if err != nil {
				return err
			}

			switch cmd.String("format") {
			case "tsv", "csv":
				comma := '\t'
				if cmd.String("format") == "csv" {
					comma = ','
				}

				var buf bytes.Buffer
				if err := report.WriteTable(&buf, entries, comma); err != nil {
					return err
				}

				return writeOutput(cmd.String("output"), buf.Bytes())

			case "pdf":
				output := cmd.String("output")
				if output == "-" {
					return fmt.Errorf("pdf reports require --output")
				}

				return report.NewPDF().GenerateReport(output, cmd.String("device"), time.Now(), entries)

			default:
				return fmt.Errorf("unknown format %q", cmd.String("format"))
			}
		},
	}
}

func validateFormat(format string) error {
	switch format {
	case "tsv", "csv", "pdf":
		return nil
	default:
		return fmt.Errorf("format must be tsv, csv or pdf, got %q", format)
	}
}
