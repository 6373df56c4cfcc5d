package env

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/maven"
)

const (
	clientArtifactName = "client"
	serverArtifactName = "server"
	joinedArtifactName = "joined"

	deobfuscatedClassifier = "deobfuscated"
)

// Environment runs the deobfuscation pipeline for requested game versions.
//
// The function chain is fixed and version-independent; only its input and
// output paths vary per version. The chain is atomic per version: any failure
// aborts the remaining functions and nothing partial is registered as
// installed.
type Environment struct {
	utilities           *Utilities
	mappingsURLTemplate string
	remapperJar         string
	workDir             string
}

// New creates an Environment working under workDir.
func New(utilities *Utilities, mappingsURLTemplate, remapperJar, workDir string) *Environment {
	return &Environment{
		utilities:           utilities,
		mappingsURLTemplate: mappingsURLTemplate,
		remapperJar:         remapperJar,
		workDir:             workDir,
	}
}

// ClientArtifact returns the raw client coordinate for a version.
func (e *Environment) ClientArtifact(version string) maven.Artifact {
	return maven.NewArtifact(helpers.MinecraftGroup, clientArtifactName, version)
}

// ServerArtifact returns the raw server coordinate for a version.
func (e *Environment) ServerArtifact(version string) maven.Artifact {
	return maven.NewArtifact(helpers.MinecraftGroup, serverArtifactName, version)
}

// JoinedArtifact returns the deobfuscated joined coordinate for a version.
func (e *Environment) JoinedArtifact(version string) maven.Artifact {
	return maven.NewArtifact(helpers.MinecraftGroup, joinedArtifactName, version).
		WithClassifier(deobfuscatedClassifier)
}

// CompileArtifacts returns the artifacts projects compile against.
func (e *Environment) CompileArtifacts(version string) []maven.Artifact {
	return []maven.Artifact{e.JoinedArtifact(version)}
}

// RuntimeArtifacts returns the artifacts required to run the game.
//
// The raw client stays on the runtime set because it still carries the
// resources the deobfuscated jar references.
func (e *Environment) RuntimeArtifacts(version string) []maven.Artifact {
	return []maven.Artifact{e.JoinedArtifact(version), e.ClientArtifact(version)}
}

// Installed reports whether every compile and runtime artifact exists.
func (e *Environment) Installed(version string) bool {
	repo := e.utilities.MinecraftRepo
	return repo.AllInstalled(e.CompileArtifacts(version)) &&
		repo.AllInstalled(e.RuntimeArtifacts(version))
}

// Ensure makes all compile and runtime artifacts for a version available.
//
// With a populated repository this performs no network calls and no
// transformation work. Otherwise the raw artifacts are fetched and the full
// function chain runs; a failure anywhere surfaces as a version-level
// installation failure.
func (e *Environment) Ensure(ctx context.Context, version string) error {
	if e.Installed(version) {
		e.utilities.Output.Debugf("version %s already installed, skipping", version)
		return nil
	}
	start := time.Now()
	if err := e.install(ctx, version); err != nil {
		return fmt.Errorf("%w: minecraft %s: %w", helpers.ErrInstallationFailed, version, err)
	}
	e.utilities.Output.DebugSincef(start, "installed minecraft %s", version)
	return nil
}

func (e *Environment) install(ctx context.Context, version string) error {
	if err := e.fetchRawArtifacts(ctx, version); err != nil {
		return err
	}
	mappings, err := e.ensureMappings(ctx, version)
	if err != nil {
		return err
	}

	versionDir := filepath.Join(e.workDir, version)
	if err := os.MkdirAll(versionDir, helpers.DirMod); err != nil {
		return fmt.Errorf("failed to create work directory %s: %w", versionDir, err)
	}

	chain, terminal := e.chain(version, versionDir, mappings)
	for _, function := range chain {
		if err := e.runFunction(ctx, function, version); err != nil {
			return err
		}
	}

	if _, err := e.utilities.MinecraftRepo.InstallFile(e.JoinedArtifact(version), terminal); err != nil {
		return err
	}
	return nil
}

// chain builds the ordered function list for a version.
//
// Every function is constructed with the concrete output path of its
// predecessor, so broken wiring shows up here, before anything runs. The
// returned terminal path is the last function's output.
func (e *Environment) chain(version, versionDir, mappings string) ([]Function, string) {
	repo := e.utilities.MinecraftRepo
	clientStripped := filepath.Join(versionDir, "client-stripped.jar")
	serverStripped := filepath.Join(versionDir, "server-stripped.jar")
	joined := filepath.Join(versionDir, "joined.jar")
	deobfuscated := filepath.Join(versionDir, "joined-deobfuscated.jar")

	return []Function{
		newStripFunction("stripClient", mappings, repo.PathFor(e.ClientArtifact(version)), clientStripped, Whitelist),
		newStripFunction("stripServer", mappings, repo.PathFor(e.ServerArtifact(version)), serverStripped, Whitelist),
		newMergeFunction("merge", clientStripped, serverStripped, joined),
		newRenameFunction("rename", mappings, joined, deobfuscated, e.remapperJar),
	}, deobfuscated
}

// runFunction prepares and executes one function with error context.
func (e *Environment) runFunction(ctx context.Context, function Function, version string) error {
	e.utilities.Output.Printf("Running %s for minecraft %s", function.Name(), version)
	start := time.Now()
	if err := function.Prepare(e.utilities); err != nil {
		return fmt.Errorf("function %s: prepare: %w", function.Name(), err)
	}
	if err := function.Execute(ctx, e.utilities); err != nil {
		return fmt.Errorf("function %s: %w", function.Name(), err)
	}
	if _, err := os.Stat(function.Output()); err != nil {
		return fmt.Errorf("%w: function %s declared %s", helpers.ErrFunctionOutputMissing, function.Name(), function.Output())
	}
	e.utilities.Output.DebugSincef(start, "%s", function.Name())
	return nil
}

// fetchRawArtifacts downloads the raw client and server jars if missing.
//
// Resolved URLs are recorded in the shared store so later runs and the
// manifest step reuse them without re-probing sources.
func (e *Environment) fetchRawArtifacts(ctx context.Context, version string) error {
	for _, artifact := range []maven.Artifact{e.ClientArtifact(version), e.ServerArtifact(version)} {
		if e.utilities.MinecraftRepo.IsInstalled(artifact) {
			continue
		}
		url, cached := e.utilities.Store.GetResolvedURL(artifact.String())
		if cached {
			if err := e.utilities.Downloader.DownloadTo(ctx, url, artifact, e.utilities.MinecraftRepo); err != nil {
				return err
			}
			continue
		}
		url, err := e.utilities.Downloader.Download(ctx, artifact, e.utilities.MinecraftRepo)
		if err != nil {
			return err
		}
		e.utilities.Store.SetResolvedURL(artifact.String(), url)
	}
	return nil
}

// ensureMappings fetches the mapping file for a version into the work dir.
func (e *Environment) ensureMappings(ctx context.Context, version string) (string, error) {
	path := filepath.Join(e.workDir, helpers.MappingsDirName, version+".txt")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if e.mappingsURLTemplate == "" {
		return "", fmt.Errorf("%w: needed for minecraft %s", helpers.ErrNoMappingsURL, version)
	}

	url := fmt.Sprintf(e.mappingsURLTemplate, version)
	resp, err := e.utilities.Downloader.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch mappings for %s: %w", version, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := os.MkdirAll(filepath.Dir(path), helpers.DirMod); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mappings-")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write mappings for %s: %w", version, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}
