package commands

import (
	"github.com/lukeha98/flint-gradle/cmd/flint-gradle/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/manifest"
	"github.com/urfave/cli/v2"
)

// Manifest returns the CLI command that generates the install manifest.
func Manifest() *cli.Command {
	flags := helpers.CommonFlags()
	flags = append(flags, helpers.ProjectFlags()...)
	flags = append(flags, helpers.ManifestFlags()...)

	return &cli.Command{
		Name:    "manifest",
		Aliases: []string{"m"},
		Usage:   "Generate the install manifest from the cached state",
		Flags:   flags,
		Action: func(c *cli.Context) error {
			cfg, runtime, cleanup, err := setup(c)
			if err != nil {
				return err
			}
			defer cleanup()
			return manifest.Generate(cfg, runtime, c.String("output"))
		},
	}
}
