// Package cli implements the flowshot command-line interface for
// maintaining snapshot stores: listing, cleaning, approving, reporting.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/flowshot/pkg/logger"
)

// Version is the CLI version, overridable at build time.
var Version = "dev"

// NewApp creates the flowshot CLI application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "flowshot",
		Usage:   "Maintain UI-flow snapshot stores",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logger.SetLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			listCommand,
			cleanCommand,
			approveCommand,
			reportCommand,
		},
	}
}
