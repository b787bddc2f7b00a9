package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter config.toml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to write the configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Init,
	}
}

// Init scaffolds a configuration file from the embedded example.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Infof("wrote configuration to %v", path)
	return r.writePlain("created %s\n", path)
}
