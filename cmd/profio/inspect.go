package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/arloliu/profio/catalog"
	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/profile"
)

func (a *app) inspectCmd() *cli.Command {
	var catalogPath string

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header of a binary container",
		ArgsUsage: "<container.bin[.lz4]>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "catalog",
				Aliases:     []string{"c"},
				Usage:       "also report whether this catalog matches the container",
				Destination: &catalogPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1); err != nil {
				return err
			}
			path := cmd.Args().First()

			header, err := profile.InspectFile(path)
			if err != nil && !errors.Is(err, errs.ErrUnsupportedVersion) {
				return err
			}

			a.printf("path:         %s\n", path)
			a.printf("version:      %d\n", header.Version)
			a.printf("total_length: %d\n", header.TotalLength)
			a.printf("checksum:     0x%08x\n", header.Checksum)
			if err != nil {
				return err
			}

			if catalogPath == "" {
				return nil
			}

			cat, err := catalog.Load(catalogPath, a.loaderOptions()...)
			if err != nil {
				return err
			}
			match := cat.Checksum() == header.Checksum && cat.TotalLength() == header.TotalLength
			a.printf("catalog:      %s (checksum 0x%08x, match=%t)\n", catalogPath, cat.Checksum(), match)

			a.logger.Debug("Inspected container",
				zap.String("path", path),
				zap.String("catalog", catalogPath),
				zap.Bool("match", match))

			return nil
		},
	}
}
