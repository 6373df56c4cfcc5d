package install

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lukeha98/flint-gradle/internal/flint/config"
	"github.com/lukeha98/flint-gradle/internal/flint/env"
	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/infra"
	"github.com/lukeha98/flint-gradle/internal/flint/javaexec"
	"github.com/lukeha98/flint-gradle/internal/flint/maven"
	"github.com/lukeha98/flint-gradle/internal/flint/project"
	"github.com/lukeha98/flint-gradle/internal/flint/store"
)

// Start installs every game version and dependency the project declares.
//
// The run is idempotent: artifacts already present in the local repositories
// are skipped, resolved URLs are reused from the cache, and the caches are
// persisted only after everything succeeded.
func Start(ctx context.Context, cfg *config.Config, runtime *infra.Infra) error {
	proj, err := project.Load(cfg.ProjectFile)
	if err != nil {
		return err
	}
	if len(proj.MinecraftVersions) == 0 {
		return fmt.Errorf("%w: %s", helpers.ErrNoMinecraftVersions, cfg.ProjectFile)
	}

	session, err := store.Open(cfg.CacheDir)
	if err != nil {
		return err
	}

	if err := run(ctx, cfg, runtime, proj, session.Store); err != nil {
		_ = session.Close(false)
		return err
	}
	return session.Close(true)
}

func run(ctx context.Context, cfg *config.Config, runtime *infra.Infra, proj *project.Project, st *store.Store) error {
	utilities, err := buildUtilities(cfg, runtime, st)
	if err != nil {
		return err
	}
	environment := env.New(
		utilities,
		cfg.MappingsURLTemplate,
		cfg.RemapperJar,
		filepath.Join(cfg.CacheDir, helpers.EnvironmentDirName),
	)

	start := time.Now()
	for _, version := range proj.SortedMinecraftVersions() {
		if err := environment.Ensure(ctx, version); err != nil {
			return err
		}
	}
	if err := installDependencies(ctx, proj, utilities); err != nil {
		return err
	}
	runtime.Output.PersistentPrintf("Installed %d minecraft version(s) and %d dependencies in %s",
		len(proj.MinecraftVersions), len(proj.Dependencies), time.Since(start).Round(time.Millisecond))
	return nil
}

func buildUtilities(cfg *config.Config, runtime *infra.Infra, st *store.Store) (*env.Utilities, error) {
	minecraftRepo, err := maven.NewRepository(filepath.Join(cfg.CacheDir, helpers.MinecraftRepositoryDirName))
	if err != nil {
		return nil, err
	}
	internalRepo, err := maven.NewRepository(filepath.Join(cfg.CacheDir, helpers.InternalRepositoryDirName))
	if err != nil {
		return nil, err
	}
	return &env.Utilities{
		Downloader:    maven.NewDownloader(runtime.HTTP, cfg.RepositoryURLs...),
		MinecraftRepo: minecraftRepo,
		InternalRepo:  internalRepo,
		HTTP:          runtime.HTTP,
		Store:         st,
		Exec:          javaexec.New(cfg.JavaBinary),
		Output:        runtime.Output,
	}, nil
}

// installDependencies resolves and fetches the declared maven dependencies.
//
// Every coordinate ends up with a cached URL, which manifest synthesis later
// depends on. Already installed jars still get their URL resolved when the
// cache lost it.
func installDependencies(ctx context.Context, proj *project.Project, utilities *env.Utilities) error {
	artifacts, err := proj.DependencyArtifacts()
	if err != nil {
		return err
	}
	for _, artifact := range artifacts {
		if err := installDependency(ctx, artifact, utilities); err != nil {
			return err
		}
	}
	return nil
}

func installDependency(ctx context.Context, artifact maven.Artifact, utilities *env.Utilities) error {
	_, cached := utilities.Store.GetResolvedURL(artifact.String())
	installed := utilities.InternalRepo.IsInstalled(artifact)
	if cached && installed {
		utilities.Output.Debugf("dependency %s already installed", artifact)
		return nil
	}

	utilities.Output.Printf("Installing dependency %s", artifact)
	if !cached {
		url, err := utilities.Downloader.ResolveURL(ctx, artifact)
		if err != nil {
			return err
		}
		utilities.Store.SetResolvedURL(artifact.String(), url)
	}
	if !installed {
		url, _ := utilities.Store.GetResolvedURL(artifact.String())
		if err := utilities.Downloader.DownloadTo(ctx, url, artifact, utilities.InternalRepo); err != nil {
			return err
		}
	}
	return nil
}
