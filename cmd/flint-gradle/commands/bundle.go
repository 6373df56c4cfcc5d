package commands

import (
	"path/filepath"

	"github.com/lukeha98/flint-gradle/cmd/flint-gradle/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/bundle"
	flinthelpers "github.com/lukeha98/flint-gradle/internal/flint/helpers"
	"github.com/urfave/cli/v2"
)

// Bundle returns the CLI command that packs the local repository for offline use.
func Bundle() *cli.Command {
	flags := helpers.CommonFlags()
	flags = append(flags, helpers.BundleFlags()...)

	return &cli.Command{
		Name:  "bundle",
		Usage: "Pack the installed artifact repository into a portable archive",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, runtime, cleanup, err := setup(c)
			if err != nil {
				return err
			}
			defer cleanup()

			repoDir := filepath.Join(cfg.CacheDir, flinthelpers.MinecraftRepositoryDirName)
			bundleFile := c.String("bundle-file")
			if err := bundle.Create(repoDir, bundleFile); err != nil {
				return err
			}
			runtime.Output.PersistentPrintf("Bundled %s into %s", repoDir, bundleFile)
			return nil
		},
	}
}

// Unbundle returns the CLI command that unpacks a bundle into the repository.
func Unbundle() *cli.Command {
	flags := helpers.CommonFlags()
	flags = append(flags, helpers.BundleFlags()...)

	return &cli.Command{
		Name:  "unbundle",
		Usage: "Unpack a bundle archive into the local artifact repository",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, runtime, cleanup, err := setup(c)
			if err != nil {
				return err
			}
			defer cleanup()

			repoDir := filepath.Join(cfg.CacheDir, flinthelpers.MinecraftRepositoryDirName)
			bundleFile := c.String("bundle-file")
			if err := bundle.Extract(bundleFile, repoDir); err != nil {
				return err
			}
			runtime.Output.PersistentPrintf("Extracted %s into %s", bundleFile, repoDir)
			return nil
		},
	}
}
