package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
	"github.com/urfave/cli/v2"
)

// Config holds runtime settings for artifact and manifest operations.
type Config struct {
	Verbose             bool
	Quiet               bool
	Offline             bool
	ProjectFile         string
	CacheDir            string
	Timeout             time.Duration
	RepositoryURLs      []string
	MappingsURLTemplate string
	DistributorURL      string
	Channel             string
	JavaBinary          string
	RemapperJar         string
	ToolConfigPath      string
	RepositoryURLsUsed  bool
	MappingsURLUsed     bool
	DistributorUsed     bool
}

// Build builds Config from CLI flags and an optional .flint.cfg file.
func Build(c *cli.Context) (*Config, error) {
	cfg := newConfigFromCLI(c)
	applyTimeout(cfg, c)

	toolConfig, toolPath, err := loadToolConfigFromCLI(c)
	if err != nil {
		return nil, err
	}
	applyToolConfig(cfg, c, toolConfig, toolPath)

	if len(cfg.RepositoryURLs) == 0 {
		cfg.RepositoryURLs = []string{helpers.MinecraftMaven, helpers.MavenCentral}
	}
	if cfg.Channel == "" {
		cfg.Channel = helpers.DefaultChannel
	}
	return cfg, nil
}

func newConfigFromCLI(c *cli.Context) *Config {
	cfg := &Config{
		Offline:     c.Bool("offline"),
		ProjectFile: c.String("project-file"),
		CacheDir:    c.String("cache-dir"),
		JavaBinary:  c.String("java-binary"),
		RemapperJar: c.String("remapper-jar"),
	}
	cfg.Verbose = c.Bool("verbose")
	cfg.Quiet = !cfg.Verbose && c.Bool("quiet")
	return cfg
}

func applyTimeout(cfg *Config, c *cli.Context) {
	cfg.Timeout = c.Duration("timeout")
	cfg.Timeout = max(cfg.Timeout, helpers.FetchDefaultTimeout)
}

func loadToolConfigFromCLI(c *cli.Context) (toolConfig, string, error) {
	toolCfg, toolPath, err := loadToolConfig(c.String("config"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return toolCfg, "", fmt.Errorf("failed to load tool config: %w", err)
	}
	return toolCfg, toolPath, nil
}

func applyToolConfig(cfg *Config, c *cli.Context, toolCfg toolConfig, toolPath string) {
	if toolPath != "" {
		cfg.ToolConfigPath = toolPath
	}
	if len(toolCfg.Repository.URLs) != 0 {
		cfg.RepositoryURLs = toolCfg.Repository.URLs
		cfg.RepositoryURLsUsed = true
	} else {
		cfg.RepositoryURLs = c.StringSlice("repository-url")
	}
	if toolCfg.Mappings.URLTemplate != "" {
		cfg.MappingsURLTemplate = toolCfg.Mappings.URLTemplate
		cfg.MappingsURLUsed = true
	} else {
		cfg.MappingsURLTemplate = c.String("mappings-url")
	}
	if toolCfg.Distributor.URL != "" {
		cfg.DistributorURL = toolCfg.Distributor.URL
		cfg.DistributorUsed = true
	} else {
		cfg.DistributorURL = c.String("distributor-url")
	}
	if toolCfg.Distributor.Channel != "" {
		cfg.Channel = toolCfg.Distributor.Channel
		cfg.DistributorUsed = true
	} else {
		cfg.Channel = c.String("channel")
	}
}

// toolRepositoryConfig maps the [repository] section from .flint.cfg.
type toolRepositoryConfig struct {
	URLs []string `toml:"urls"`
}

// toolMappingsConfig maps the [mappings] section from .flint.cfg.
type toolMappingsConfig struct {
	URLTemplate string `toml:"url_template"`
}

// toolDistributorConfig maps the [distributor] section from .flint.cfg.
type toolDistributorConfig struct {
	URL     string `toml:"url"`
	Channel string `toml:"channel"`
}

// toolConfig represents the parsed .flint.cfg structure.
type toolConfig struct {
	Repository  toolRepositoryConfig  `toml:"repository"`
	Mappings    toolMappingsConfig    `toml:"mappings"`
	Distributor toolDistributorConfig `toml:"distributor"`
}

// loadToolConfig loads .flint.cfg if it exists.
func loadToolConfig(configPath string) (toolConfig, string, error) {
	config := toolConfig{}
	if _, err := os.Stat(configPath); err != nil {
		return config, "", err
	}
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return config, "", fmt.Errorf("failed to parse .flint.cfg: %w", err)
	}
	return config, configPath, nil
}
