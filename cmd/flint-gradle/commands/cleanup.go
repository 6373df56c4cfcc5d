package commands

import (
	"github.com/lukeha98/flint-gradle/cmd/flint-gradle/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/cleanup"
	"github.com/urfave/cli/v2"
)

// Cleanup returns the CLI command that removes the cache databases and repositories.
func Cleanup() *cli.Command {
	flags := helpers.CommonFlags()

	return &cli.Command{
		Name:    "cleanup",
		Aliases: []string{"c"},
		Usage:   "Remove cached databases, repositories and pipeline work files",
		Flags:   flags,
		Action: func(c *cli.Context) error {
			cfg, runtime, done, err := setup(c)
			if err != nil {
				return err
			}
			defer done()
			return cleanup.Start(c.Context, cfg, runtime)
		},
	}
}
