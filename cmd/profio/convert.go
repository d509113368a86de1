package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/arloliu/profio/format"
	"github.com/arloliu/profio/profile"
)

func (a *app) exportCmd() *cli.Command {
	var catalogPath string

	return &cli.Command{
		Name:      "export",
		Usage:     "Write a binary container as delimited text",
		ArgsUsage: "<in.bin[.lz4]> <out.csv[.lz4]>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "catalog",
				Aliases:     []string{"c"},
				Usage:       "feature catalog (.json or .tab)",
				Destination: &catalogPath,
				Required:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2); err != nil {
				return err
			}

			return a.rewrite(cmd.Args().Get(0), cmd.Args().Get(1), catalogPath, "", format.Text)
		},
	}
}

func (a *app) convertCmd() *cli.Command {
	var catalogPath, targetCatalog string

	return &cli.Command{
		Name:      "convert",
		Usage:     "Re-encode a binary container, e.g. .bin to .bin.lz4 or onto another catalog",
		ArgsUsage: "<in.bin[.lz4]> <out.bin[.lz4]>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "catalog",
				Aliases:     []string{"c"},
				Usage:       "feature catalog of the input (.json or .tab)",
				Destination: &catalogPath,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "to-catalog",
				Usage:       "catalog for the output; every feature must exist in the input",
				Destination: &targetCatalog,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2); err != nil {
				return err
			}

			return a.rewrite(cmd.Args().Get(0), cmd.Args().Get(1), catalogPath, targetCatalog, format.Binary)
		},
	}
}

// rewrite reads in with catalogPath and writes it to out in the given format, using
// targetCatalog for the output when set.
func (a *app) rewrite(in, out, catalogPath, targetCatalog string, f format.Format) error {
	if samePath(in, out) {
		return fmt.Errorf("convert %s: output is the input file", in)
	}

	set, err := profile.ReadFile(in, a.catalogOption(catalogPath), profile.WithLogger(a.logger))
	if err != nil {
		return err
	}

	outCatalog := a.catalogOption(catalogPath)
	if targetCatalog != "" {
		outCatalog = a.catalogOption(targetCatalog)
	}

	if err := profile.WriteSetFile(out, set, outCatalog, profile.WithFormat(f), profile.WithLogger(a.logger)); err != nil {
		return fmt.Errorf("convert %s: %w", in, err)
	}

	a.logger.Info("Converted profile container",
		zap.String("from", in),
		zap.String("to", out),
		zap.Stringer("format", f),
		zap.Int("features", set.Len()))
	a.printf("%s -> %s\n", in, out)

	return nil
}

// samePath reports whether a and b name the same file, or would once b is created.
func samePath(a, b string) bool {
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}

	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	return errA == nil && errB == nil && absA == absB
}
