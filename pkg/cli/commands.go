package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/flowshot/pkg/report"
	"github.com/devicelab-dev/flowshot/pkg/snapshot"
)

// storeFromArgs resolves the snapshot directory argument of a command.
func storeFromArgs(c *cli.Context) (*snapshot.Store, error) {
	dir := c.Args().First()
	if dir == "" {
		return nil, fmt.Errorf("missing snapshot directory argument")
	}
	return snapshot.NewStore(dir), nil
}

var listCommand = &cli.Command{
	Name:      "list",
	Usage:     "List snapshots in a store with their pass/fail state",
	ArgsUsage: "<snapshot-dir>",
	Action: func(c *cli.Context) error {
		store, err := storeFromArgs(c)
		if err != nil {
			return err
		}
		names, err := store.Names()
		if err != nil {
			return fmt.Errorf("read store: %w", err)
		}
		for _, name := range names {
			state := "ok"
			if store.HasFail(name) {
				state = "FAIL"
			}
			fmt.Fprintf(c.App.Writer, "%-6s %s\n", state, name)
		}
		return nil
	},
}

var cleanCommand = &cli.Command{
	Name:      "clean",
	Usage:     "Delete all fail and diff artifacts from a store",
	ArgsUsage: "<snapshot-dir>",
	Action: func(c *cli.Context) error {
		store, err := storeFromArgs(c)
		if err != nil {
			return err
		}
		if err := store.Clean(); err != nil {
			return fmt.Errorf("clean store: %w", err)
		}
		return nil
	},
}

var approveCommand = &cli.Command{
	Name:      "approve",
	Usage:     "Promote failing renders to new references",
	ArgsUsage: "<snapshot-dir> [name...]",
	Description: `Replace each named snapshot's reference with its last failing render.
With no names, every snapshot that currently has a failing render is approved.

Examples:
  flowshot approve ./snapshots/checkout_test
  flowshot approve ./snapshots/checkout_test checkout-cart-dark`,
	Action: func(c *cli.Context) error {
		store, err := storeFromArgs(c)
		if err != nil {
			return err
		}

		names := c.Args().Tail()
		if len(names) == 0 {
			all, err := store.Names()
			if err != nil {
				return fmt.Errorf("read store: %w", err)
			}
			for _, name := range all {
				if store.HasFail(name) {
					names = append(names, name)
				}
			}
		}

		for _, name := range names {
			if err := store.Approve(name); err != nil {
				return fmt.Errorf("approve %s: %w", name, err)
			}
			fmt.Fprintf(c.App.Writer, "approved %s\n", name)
		}
		return nil
	},
}

var reportCommand = &cli.Command{
	Name:      "report",
	Usage:     "Generate an HTML gallery for a store",
	ArgsUsage: "<snapshot-dir>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "flowshot-report.html",
			Usage:   "Output HTML file",
		},
		&cli.StringFlag{
			Name:  "title",
			Value: "flowshot report",
			Usage: "Report title",
		},
	},
	Action: func(c *cli.Context) error {
		store, err := storeFromArgs(c)
		if err != nil {
			return err
		}
		entries, err := report.FromStore(store.Dir())
		if err != nil {
			return fmt.Errorf("scan store: %w", err)
		}
		out := c.String("output")
		if err := report.WriteHTML(out, c.String("title"), entries); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "wrote %s (%d snapshots)\n", out, len(entries))
		return nil
	},
}
