package commands

import (
	"io"
	"log"
	"net/http"

	"github.com/lukeha98/flint-gradle/internal/flint/config"
	"github.com/lukeha98/flint-gradle/internal/flint/fetch"
	"github.com/lukeha98/flint-gradle/internal/flint/infra"
	"github.com/lukeha98/flint-gradle/internal/progress"
	"github.com/urfave/cli/v2"
)

// setup builds the shared config, printer and runtime for a command.
//
// The returned cleanup must run before the command returns. In offline mode
// the runtime carries a nil HTTP client; resolution code treats that as
// "network forbidden" and fails fast instead of dialing.
func setup(c *cli.Context) (*config.Config, *infra.Infra, func(), error) {
	cfg, err := config.Build(c)
	if err != nil {
		return nil, nil, nil, err
	}
	p := progress.New(cfg.Verbose, cfg.Quiet)
	if cfg.Verbose {
		log.SetOutput(p)
	} else {
		log.SetOutput(io.Discard)
	}

	var client *http.Client
	if !cfg.Offline {
		client = fetch.New(cfg.Timeout)
	}
	runtime := infra.New(p, client)
	runtime.DebugToolConfig(cfg)
	return cfg, runtime, p.Close, nil
}
