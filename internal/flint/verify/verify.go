package verify

import (
	"context"
	"time"

	"github.com/lukeha98/flint-gradle/internal/flint/config"
	"github.com/lukeha98/flint-gradle/internal/flint/infra"
	"github.com/lukeha98/flint-gradle/internal/flint/manifest"
	"github.com/lukeha98/flint-gradle/internal/flint/maven"
	"github.com/lukeha98/flint-gradle/internal/flint/project"
	"github.com/lukeha98/flint-gradle/internal/flint/store"
)

// Start runs the checksum verification pass over all static files.
//
// It is the explicit prerequisite of manifest generation: the checksum cache
// it fills is what gates the synthesizer.
func Start(ctx context.Context, cfg *config.Config, runtime *infra.Infra) error {
	proj, err := project.Load(cfg.ProjectFile)
	if err != nil {
		return err
	}

	session, err := store.Open(cfg.CacheDir)
	if err != nil {
		return err
	}

	verifier := &manifest.Verifier{
		Project:    proj,
		Store:      session.Store,
		Downloader: maven.NewDownloader(runtime.HTTP),
		Output:     runtime.Output,
	}

	start := time.Now()
	if err := verifier.Verify(ctx); err != nil {
		_ = session.Close(false)
		return err
	}
	if err := session.Close(true); err != nil {
		return err
	}
	runtime.Output.PersistentPrintf("Verified %d static file(s) in %s",
		len(proj.StaticFiles), time.Since(start).Round(time.Millisecond))
	return nil
}
