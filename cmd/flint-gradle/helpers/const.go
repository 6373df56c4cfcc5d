package helpers

import "time"

const (
	dirSuffix              = ".cache/flint-gradle"
	defaultHomeDir         = "/root"
	defaultTimeout         = 30 * time.Second
	defaultProjectFilePath = "flint.yml"
	defaultToolConfigPath  = ".flint.cfg"
	defaultManifestPath    = "manifest.json"
	defaultBundlePath      = "flint-bundle.tar.gz"
	defaultChannel         = "development"
	defaultDistributorURL  = "https://dist.labymod.net/api/v1/"
)
