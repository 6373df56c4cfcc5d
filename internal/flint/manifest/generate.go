package manifest

import (
	"github.com/lukeha98/flint-gradle/internal/flint/config"
	"github.com/lukeha98/flint-gradle/internal/flint/infra"
	"github.com/lukeha98/flint-gradle/internal/flint/project"
	"github.com/lukeha98/flint-gradle/internal/flint/store"
)

// Generate synthesizes the manifest and writes it to outputPath.
//
// Both cache files must already exist on disk: a missing file means the
// resolution or verification step never ran and is a fatal configuration
// error rather than a reason to recompute anything here.
func Generate(cfg *config.Config, runtime *infra.Infra, outputPath string) error {
	if err := store.RequireCacheFiles(cfg.CacheDir); err != nil {
		return err
	}
	proj, err := project.Load(cfg.ProjectFile)
	if err != nil {
		return err
	}

	session, err := store.Open(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = session.Close(false)
	}()

	synthesizer := &Synthesizer{
		Project: proj,
		Store:   session.Store,
		Channel: cfg.Channel,
		Output:  runtime.Output,
	}
	pkg, err := synthesizer.Synthesize()
	if err != nil {
		return err
	}
	if err := Write(outputPath, pkg); err != nil {
		return err
	}
	runtime.Output.PersistentPrintf("Wrote manifest with %d instruction(s) to %s", len(pkg.Instructions), outputPath)
	return nil
}
