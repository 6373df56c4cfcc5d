package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/output"
	"github.com/lukeha98/flint-gradle/internal/flint/project"
	"github.com/lukeha98/flint-gradle/internal/flint/store"
)

// Synthesizer deterministically turns resolved project state into a manifest.
//
// It only reads: the project descriptor, the resolved-URL cache and the
// checksum cache. Both caches must have been populated by earlier steps; a
// gap in either one is a consistency error, never a silent fallback.
type Synthesizer struct {
	Project *project.Project
	Store   *store.Store
	Channel string
	Output  output.Printer
}

// Synthesize produces the complete manifest document.
func (s *Synthesizer) Synthesize() (*Package, error) {
	channel := s.Project.EffectiveChannel(s.Channel)

	mavenInstructions, err := s.mavenInstructions()
	if err != nil {
		return nil, err
	}
	own := s.ownInstruction(channel)
	staticInstructions, err := s.staticFileInstructions()
	if err != nil {
		return nil, err
	}
	jsonInstructions := s.jsonPatchInstructions()

	classpath := s.runtimeClasspath(mavenInstructions, own, staticInstructions)

	instructions := make([]Instruction, 0,
		1+len(mavenInstructions)+len(staticInstructions)+len(jsonInstructions))
	if own != nil {
		instructions = append(instructions, *own)
	}
	instructions = append(instructions, mavenInstructions...)
	instructions = append(instructions, staticInstructions...)
	instructions = append(instructions, jsonInstructions...)

	return &Package{
		Group:             s.Project.Group,
		Name:              s.Project.Name,
		Description:       s.Project.EffectiveDescription(),
		Version:           s.Project.Version,
		Channel:           channel,
		MinecraftVersions: strings.Join(s.Project.SortedMinecraftVersions(), ","),
		FlintVersion:      s.Project.FlintVersion,
		Authors:           emptyIfNil(s.Project.Authors),
		Dependencies:      s.packageDependencies(),
		RuntimeClasspath:  classpath,
		Instructions:      dedupInstructions(instructions),
	}, nil
}

// mavenInstructions builds one download instruction per resolved dependency.
//
// Target paths are rooted at the library directory token so instructions stay
// portable across machines; the layout below the token mirrors the local
// repository exactly.
func (s *Synthesizer) mavenInstructions() ([]Instruction, error) {
	artifacts, err := s.Project.DependencyArtifacts()
	if err != nil {
		return nil, err
	}
	out := make([]Instruction, 0, len(artifacts))
	for _, artifact := range artifacts {
		url, ok := s.Store.GetResolvedURL(artifact.String())
		if !ok {
			return nil, fmt.Errorf("%w: no cached URL for %s, run resolution first", helpers.ErrArtifactNotFound, artifact)
		}
		out = append(out, Instruction{
			Type: TypeDownloadMavenDependency,
			DownloadMavenDependency: &DownloadMavenDependency{
				Group:      artifact.Group,
				Name:       artifact.Name,
				Version:    artifact.Version,
				Classifier: artifact.Classifier,
				URL:        url,
				Path:       helpers.LibraryDirToken + "/" + artifact.FilePath(),
			},
		})
	}
	return out, nil
}

// ownInstruction builds the instruction installing the project's own jar.
//
// A library-typed project lands in the shared library directory using the
// repository layout; anything else is a package and lands flat in the package
// directory. The download URL points at the distributor channel.
func (s *Synthesizer) ownInstruction(channel string) *Instruction {
	if !s.Project.InstallJar {
		return nil
	}
	var targetPath string
	if s.Project.IsLibrary() {
		targetPath = helpers.LibraryDirToken + "/" + s.Project.OwnArtifact().FilePath()
	} else {
		targetPath = helpers.PackageDirToken + "/" + s.Project.Name + helpers.JarExtension
	}
	return &Instruction{
		Type: TypeDownloadMavenDependency,
		DownloadMavenDependency: &DownloadMavenDependency{
			Group:   s.Project.Group,
			Name:    s.Project.Name,
			Version: s.Project.Version,
			URL:     helpers.DistributorURLToken + channel,
			Path:    targetPath,
		},
	}
}

// staticFileInstructions builds download instructions for declared files.
func (s *Synthesizer) staticFileInstructions() ([]Instruction, error) {
	out := make([]Instruction, 0, len(s.Project.StaticFiles))
	for _, file := range s.Project.StaticFiles {
		sum, ok := s.Store.GetChecksum(file.Identity())
		if !ok {
			return nil, fmt.Errorf("%w: %s, run verification first", helpers.ErrMissingChecksum, file.Identity())
		}
		out = append(out, Instruction{
			Type: TypeDownloadFile,
			OS:   file.OS,
			DownloadFile: &DownloadFile{
				URL:      file.Identity(),
				Path:     file.Path,
				Checksum: sum,
			},
		})
	}
	return out, nil
}

// jsonPatchInstructions merges patches by target file and pretty-print flag.
//
// Declaration order is preserved both across instructions and within the
// merged injection list of each instruction.
func (s *Synthesizer) jsonPatchInstructions() []Instruction {
	type mergeKey struct {
		file   string
		pretty bool
	}
	merged := make(map[mergeKey]*ModifyJSONFile)
	order := make([]mergeKey, 0, len(s.Project.JSONPatches))

	for _, patch := range s.Project.JSONPatches {
		key := mergeKey{file: patch.File, pretty: patch.Pretty}
		payload, ok := merged[key]
		if !ok {
			payload = &ModifyJSONFile{Path: patch.File, Pretty: patch.Pretty}
			merged[key] = payload
			order = append(order, key)
		}
		payload.Injections = append(payload.Injections, JSONInjection{
			Type:  patch.Type,
			Path:  patch.Path,
			Key:   patch.Key,
			Value: patch.Value,
		})
	}

	out := make([]Instruction, 0, len(order))
	for _, key := range order {
		out = append(out, Instruction{
			Type:           TypeModifyJSONFile,
			ModifyJSONFile: merged[key],
		})
	}
	return out
}

// runtimeClasspath computes the classpath entries of the installed package.
//
// Every maven target path joins the classpath except the project's own entry,
// which must not appear twice for self-referential packages. Static files
// join only when their target path is a jar.
func (s *Synthesizer) runtimeClasspath(mavenInstructions []Instruction, own *Instruction, staticInstructions []Instruction) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(mavenInstructions)+len(staticInstructions))

	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	for _, instruction := range mavenInstructions {
		path := instruction.DownloadMavenDependency.Path
		if own != nil && path == own.DownloadMavenDependency.Path {
			continue
		}
		add(path)
	}
	for _, instruction := range staticInstructions {
		if strings.HasSuffix(instruction.DownloadFile.Path, helpers.JarExtension) {
			add(instruction.DownloadFile.Path)
		}
	}
	return out
}

// packageDependencies collects sibling project dependencies.
//
// A referenced project without a descriptor of its own cannot be expressed in
// the manifest; it is skipped with a warning rather than failing the build.
func (s *Synthesizer) packageDependencies() []Dependency {
	out := make([]Dependency, 0, len(s.Project.Projects))
	for _, dir := range s.Project.Projects {
		path := filepath.Join(s.Project.Dir(), dir, helpers.ProjectFileName)
		sibling, err := project.Load(path)
		if err != nil {
			s.Output.Warnf("excluding project dependency %s: %v", dir, err)
			continue
		}
		out = append(out, Dependency{
			Name:    sibling.Name,
			Version: sibling.Version,
			Channel: sibling.EffectiveChannel(s.Channel),
		})
	}
	return out
}

// dedupInstructions removes structural duplicates, keeping first occurrence.
func dedupInstructions(instructions []Instruction) []Instruction {
	seen := make(map[string]struct{}, len(instructions))
	out := make([]Instruction, 0, len(instructions))
	for _, instruction := range instructions {
		key := instruction.dedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, instruction)
	}
	return out
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// Write serializes the manifest document atomically to path.
func Write(path string, pkg *Package) error {
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), helpers.DirMod); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".manifest-")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
