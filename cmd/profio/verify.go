package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/arloliu/profio/profile"
)

func (a *app) verifyCmd() *cli.Command {
	var catalogPath string

	return &cli.Command{
		Name:      "verify",
		Usage:     "Check a binary container against its catalog",
		ArgsUsage: "<container.bin[.lz4]>...",
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
			if cmd.Args().Len() == 0 {
				return requireArgs(cmd, 1)
			}

			opts := []profile.Option{a.catalogOption(catalogPath), profile.WithLogger(a.logger)}
			for _, path := range cmd.Args().Slice() {
				if err := profile.VerifyFile(path, opts...); err != nil {
					a.logger.Error("Verification failed", zap.String("path", path), zap.Error(err))
					return err
				}
				a.printf("OK %s\n", path)
			}

			return nil
		},
	}
}
