package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func cmd() *cli.Command {
	return &cli.Command{
		Name:    "webpa_collector",
		Usage:   "TR-181 configuration collector for WebPA-managed devices",
		Version: version,
		Commands: []*cli.Command{
			fetchCmd(),
			convertCmd(),
			dumpCmd(),
			translateCmd(),
			pathsCmd(),
			exportCmd(),
			serveCmd(),
		},
	}
}

func logger(ctx context.Context) (*slog.Logger, error) {
	log, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return nil, errors.New("failed to get logger from context")
	}

	return log, nil
}

// readInput reads a whole document from path, or from stdin when path
// is "-".
func readInput(path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return data, "stdin", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %q: %w", path, err)
	}

	return data, path, nil
}

// writeOutput writes a finished document to path, or to stdout when
// path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write stdout: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}

	return nil
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", path)
		}
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", path)
	}

	return nil
}

func validateConfig(config string) error {
	if err := validateFile(config); err != nil {
		return err
	}

	ext := filepath.Ext(config)
	if ext != ".yml" && ext != ".yaml" {
		return fmt.Errorf("invalid extension %q", config)
	}

	return nil
}
