package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/profio/catalog"
)

func (a *app) checksumCmd() *cli.Command {
	var listFeatures bool

	return &cli.Command{
		Name:      "checksum",
		Usage:     "Print the checksum a catalog embeds in its containers",
		ArgsUsage: "<catalog.json|catalog.tab>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "features", Usage: "list every feature with its offset and length", Destination: &listFeatures},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1); err != nil {
				return err
			}

			cat, err := catalog.Load(cmd.Args().First(), a.loaderOptions()...)
			if err != nil {
				return err
			}

			a.printf("features:     %d\n", cat.Len())
			a.printf("total_length: %d\n", cat.TotalLength())
			a.printf("checksum:     0x%08x\n", cat.Checksum())

			if listFeatures {
				for i, e := range cat.All() {
					a.printf("%s\t%d\t%d\n", e.Name, cat.Offset(i), e.Length)
				}
			}

			return nil
		},
	}
}
