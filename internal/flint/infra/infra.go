package infra

import (
	"net/http"
	"os"
	"time"

	"github.com/lukeha98/flint-gradle/internal/flint/config"
	"github.com/lukeha98/flint-gradle/internal/flint/output"
)

// Infra holds runtime dependencies such as IO and HTTP clients.
//
// HTTP is nil when running in offline mode; components must treat a nil
// client as "network access forbidden" rather than constructing their own.
type Infra struct {
	Output  output.Printer
	HTTP    *http.Client
	Now     func() time.Time
	TempDir func() string
}

// New builds Infra with default helpers for time and temp paths.
func New(out output.Printer, httpClient *http.Client) *Infra {
	return &Infra{
		Output:  out,
		HTTP:    httpClient,
		Now:     time.Now,
		TempDir: os.TempDir,
	}
}

// DebugToolConfig logs which settings were sourced from .flint.cfg.
func (i *Infra) DebugToolConfig(cfg *config.Config) {
	if i == nil || i.Output == nil || cfg == nil || cfg.ToolConfigPath == "" {
		return
	}
	if cfg.RepositoryURLsUsed {
		i.Output.Debugf(".flint.cfg %s: repository.urls=%v", cfg.ToolConfigPath, cfg.RepositoryURLs)
	}
	if cfg.MappingsURLUsed {
		i.Output.Debugf(".flint.cfg %s: mappings.url_template=%s", cfg.ToolConfigPath, cfg.MappingsURLTemplate)
	}
	if cfg.DistributorUsed {
		i.Output.Debugf(".flint.cfg %s: distributor.url=%s channel=%s", cfg.ToolConfigPath, cfg.DistributorURL, cfg.Channel)
	}
}
