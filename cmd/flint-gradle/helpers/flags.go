package helpers

import (
	"github.com/urfave/cli/v2"
)

// CommonFlags defines shared CLI flags for all commands.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "Verbose output",
			EnvVars: []string{"FLINT_GRADLE_VERBOSE"},
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Quiet mode, not working with verbose",
			EnvVars: []string{"FLINT_GRADLE_QUIET"},
		},
		&cli.StringFlag{
			Name:    "cache-dir",
			Usage:   "Local cache directory",
			Value:   defaultCacheDir(),
			EnvVars: []string{"FLINT_GRADLE_CACHE_DIR"},
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to .flint.cfg file",
			Value:   defaultToolConfigPath,
			EnvVars: []string{"FLINT_GRADLE_CONFIG"},
		},
	}
}

// ProjectFlags defines CLI flags for project descriptor handling.
func ProjectFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project-file",
			Aliases: []string{"f"},
			Usage:   "Path to flint.yml project file",
			Value:   defaultProjectFilePath,
			EnvVars: []string{"FLINT_GRADLE_PROJECT_FILE"},
		},
		&cli.StringFlag{
			Name:    "channel",
			Usage:   "Distributor release channel",
			Value:   defaultChannel,
			EnvVars: []string{"FLINT_GRADLE_CHANNEL"},
		},
		&cli.StringFlag{
			Name:    "distributor-url",
			Usage:   "Distributor base URL",
			Value:   defaultDistributorURL,
			EnvVars: []string{"FLINT_GRADLE_DISTRIBUTOR_URL"},
		},
	}
}

// RepositoryFlags defines CLI flags for remote repository access.
func RepositoryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "repository-url",
			Usage:   "Remote maven repository URL, repeatable, probed in order",
			EnvVars: []string{"FLINT_GRADLE_REPOSITORY_URL"},
		},
		&cli.StringFlag{
			Name:    "mappings-url",
			Usage:   "Mappings URL template with a %s placeholder for the game version",
			EnvVars: []string{"FLINT_GRADLE_MAPPINGS_URL"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Timeout duration",
			Value:   defaultTimeout,
			EnvVars: []string{"FLINT_GRADLE_TIMEOUT"},
		},
		&cli.BoolFlag{
			Name:    "offline",
			Usage:   "Disable network access, fail fast on uncached resolutions",
			EnvVars: []string{"FLINT_GRADLE_OFFLINE"},
		},
	}
}

// PipelineFlags defines CLI flags for the deobfuscation pipeline.
func PipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "java-binary",
			Usage:   "Java binary used for external tools",
			Value:   "java",
			EnvVars: []string{"FLINT_GRADLE_JAVA_BINARY"},
		},
		&cli.StringFlag{
			Name:    "remapper-jar",
			Usage:   "External remapper jar, uses the in-process renamer when unset",
			EnvVars: []string{"FLINT_GRADLE_REMAPPER_JAR"},
		},
	}
}

// ManifestFlags defines CLI flags for manifest generation.
func ManifestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Path to write the manifest to",
			Value:   defaultManifestPath,
			EnvVars: []string{"FLINT_GRADLE_MANIFEST_OUTPUT"},
		},
	}
}

// BundleFlags defines CLI flags for bundle operations.
func BundleFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "bundle-file",
			Aliases: []string{"b"},
			Usage:   "Path of the offline bundle archive",
			Value:   defaultBundlePath,
			EnvVars: []string{"FLINT_GRADLE_BUNDLE_FILE"},
		},
	}
}
