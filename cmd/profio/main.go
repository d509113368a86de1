package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/profio/catalog"
	"github.com/arloliu/profio/profile"
)

// app carries the state shared by every subcommand.
type app struct {
	out    io.Writer
	logger *zap.Logger
	cfg    Config

	configPath  string
	verbose     bool
	nameField   string
	coordsField string
}

func main() {
	a := &app{out: os.Stdout}
	if err := a.command().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:  "profio",
		Usage: "Inspect, verify and convert per-feature profile containers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to a YAML config file",
				Sources:     cli.EnvVars("PROFIO_CONFIG"),
				Destination: &a.configPath,
			},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging", Destination: &a.verbose},
			&cli.StringFlag{
				Name:        "name-field",
				Usage:       "feature name field of structured catalogs",
				Value:       catalog.DefaultNameField,
				Destination: &a.nameField,
			},
			&cli.StringFlag{
				Name:        "coords-field",
				Usage:       "coordinate pairs field of structured catalogs",
				Value:       catalog.DefaultCoordsField,
				Destination: &a.coordsField,
			},
		},
		Before: a.before,
		After: func(ctx context.Context, cmd *cli.Command) error {
			if a.logger != nil {
				_ = a.logger.Sync()
			}

			return nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			a.inspectCmd(),
			a.checksumCmd(),
			a.verifyCmd(),
			a.exportCmd(),
			a.convertCmd(),
		},
	}
}

// before loads the config file and builds the logger. Flags set on the command line win
// over the config file.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return ctx, err
	}
	a.cfg = cfg
	a.applyConfig(cmd)

	if a.logger == nil {
		logger, err := newLogger(a.cfg.LogLevel, a.verbose)
		if err != nil {
			return ctx, err
		}
		a.logger = logger
	}

	return ctx, nil
}

func (a *app) applyConfig(cmd *cli.Command) {
	if a.cfg.Catalog.NameField != "" && !cmd.IsSet("name-field") {
		a.nameField = a.cfg.Catalog.NameField
	}
	if a.cfg.Catalog.CoordsField != "" && !cmd.IsSet("coords-field") {
		a.coordsField = a.cfg.Catalog.CoordsField
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = lvl
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

func (a *app) loaderOptions() []catalog.LoaderOption {
	return []catalog.LoaderOption{
		catalog.WithNameField(a.nameField),
		catalog.WithCoordsField(a.coordsField),
	}
}

// catalogOption resolves a catalog path into a profile option using the configured fields.
func (a *app) catalogOption(path string) profile.Option {
	return profile.WithCatalogFile(path, a.loaderOptions()...)
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// requireArgs checks the positional argument count of cmd.
func requireArgs(cmd *cli.Command, n int) error {
	if cmd.Args().Len() != n {
		return fmt.Errorf("%s: expected %d argument(s) %s, got %d", cmd.Name, n, cmd.ArgsUsage, cmd.Args().Len())
	}

	return nil
}
