package commands

import (
	"github.com/lukeha98/flint-gradle/cmd/flint-gradle/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/verify"
	"github.com/urfave/cli/v2"
)

// Verify returns the CLI command that checksums all static files.
func Verify() *cli.Command {
	flags := helpers.CommonFlags()
	flags = append(flags, helpers.ProjectFlags()...)
	flags = append(flags, helpers.RepositoryFlags()...)

	return &cli.Command{
		Name:    "verify",
		Aliases: []string{"v"},
		Usage:   "Compute and cache checksums of the project's static files",
		Flags:   flags,
		Action: func(c *cli.Context) error {
			cfg, runtime, cleanup, err := setup(c)
			if err != nil {
				return err
			}
			defer cleanup()
			return verify.Start(c.Context, cfg, runtime)
		},
	}
}
