package commands

import (
	"github.com/lukeha98/flint-gradle/cmd/flint-gradle/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/install"
	"github.com/urfave/cli/v2"
)

// Install returns the CLI command that installs game versions and dependencies.
func Install() *cli.Command {
	flags := helpers.CommonFlags()
	flags = append(flags, helpers.ProjectFlags()...)
	flags = append(flags, helpers.RepositoryFlags()...)
	flags = append(flags, helpers.PipelineFlags()...)

	return &cli.Command{
		Name:    "install",
		Aliases: []string{"i"},
		Usage:   "Install minecraft versions and dependencies from the project file",
		Flags:   flags,
		Action: func(c *cli.Context) error {
			cfg, runtime, cleanup, err := setup(c)
			if err != nil {
				return err
			}
			defer cleanup()
			return install.Start(c.Context, cfg, runtime)
		},
	}
}
