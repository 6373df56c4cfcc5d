package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver"
	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/maven"
	"gopkg.in/yaml.v3"
)

const (
	// TypePackage marks a project whose jar installs into the package directory.
	TypePackage = "package"
	// TypeLibrary marks a project whose jar installs into the library directory.
	TypeLibrary = "library"

	// PatchModifyArray appends a value to a JSON array at a path.
	PatchModifyArray = "modify_array"
	// PatchModifyObject sets a key within a JSON object at a path.
	PatchModifyObject = "modify_object"
)

// StaticFile describes a file installed verbatim, not as a dependency.
//
// Exactly one of URL (remote) and Source (local path) is set.
type StaticFile struct {
	URL    string `yaml:"url,omitempty"`
	Source string `yaml:"source,omitempty"`
	Path   string `yaml:"path"`
	OS     string `yaml:"os,omitempty"`
}

// Remote reports whether the file is fetched from a URL.
func (f StaticFile) Remote() bool {
	return f.URL != ""
}

// Identity returns the checksum cache key for the file.
func (f StaticFile) Identity() string {
	if f.Remote() {
		return f.URL
	}
	return f.Source
}

// JSONPatch describes a declarative modification of a target JSON file.
type JSONPatch struct {
	File   string   `yaml:"file"`
	Pretty bool     `yaml:"pretty,omitempty"`
	Type   string   `yaml:"type"`
	Path   []string `yaml:"path,omitempty"`
	Key    string   `yaml:"key,omitempty"`
	Value  any      `yaml:"value"`
}

// Project is the parsed flint.yml descriptor.
type Project struct {
	Group             string       `yaml:"group"`
	Name              string       `yaml:"name"`
	Version           string       `yaml:"version"`
	Description       string       `yaml:"description,omitempty"`
	Authors           []string     `yaml:"authors,omitempty"`
	FlintVersion      string       `yaml:"flint_version"`
	Channel           string       `yaml:"channel,omitempty"`
	Type              string       `yaml:"type,omitempty"`
	InstallJar        bool         `yaml:"install_jar,omitempty"`
	MinecraftVersions []string     `yaml:"minecraft_versions"`
	Dependencies      []string     `yaml:"dependencies,omitempty"`
	Projects          []string     `yaml:"projects,omitempty"`
	StaticFiles       []StaticFile `yaml:"static_files,omitempty"`
	JSONPatches       []JSONPatch  `yaml:"json_patches,omitempty"`

	dir string
}

// Load reads and validates a project descriptor file.
func Load(path string) (*Project, error) {
	//nolint:gosec // path is a user-provided project file expected by CLI.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}
	proj := &Project{}
	if err := yaml.Unmarshal(data, proj); err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	proj.dir = filepath.Dir(path)
	if err := proj.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return proj, nil
}

// Dir returns the directory the project file was loaded from.
func (p *Project) Dir() string {
	return p.dir
}

// Validate checks the descriptor for structural problems.
func (p *Project) Validate() error {
	if p.FlintVersion == "" {
		return helpers.ErrMissingFlintVersion
	}
	if p.Group == "" || p.Name == "" {
		return fmt.Errorf("%w: group and name are required", helpers.ErrInvalidCoordinate)
	}
	if _, err := semver.NewVersion(p.Version); err != nil {
		return fmt.Errorf("%w: project version %q", helpers.ErrInvalidVersion, p.Version)
	}
	if p.Type != "" && p.Type != TypePackage && p.Type != TypeLibrary {
		return fmt.Errorf("unknown project type %q", p.Type)
	}
	for _, dep := range p.Dependencies {
		if _, err := maven.ParseCoordinate(dep); err != nil {
			return err
		}
	}
	for _, file := range p.StaticFiles {
		if err := validateStaticFile(file); err != nil {
			return err
		}
	}
	for _, patch := range p.JSONPatches {
		if err := validateJSONPatch(patch); err != nil {
			return err
		}
	}
	return nil
}

func validateStaticFile(file StaticFile) error {
	if file.Path == "" {
		return fmt.Errorf("%w: target path is required", helpers.ErrInvalidStaticFile)
	}
	if (file.URL == "") == (file.Source == "") {
		return fmt.Errorf("%w: exactly one of url and source must be set for %s", helpers.ErrInvalidStaticFile, file.Path)
	}
	return nil
}

func validateJSONPatch(patch JSONPatch) error {
	if patch.File == "" {
		return fmt.Errorf("%w: target file is required", helpers.ErrInvalidJSONPatch)
	}
	switch patch.Type {
	case PatchModifyArray:
		return nil
	case PatchModifyObject:
		if patch.Key == "" {
			return fmt.Errorf("%w: modify_object requires a key for %s", helpers.ErrInvalidJSONPatch, patch.File)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q for %s", helpers.ErrInvalidJSONPatch, patch.Type, patch.File)
	}
}

// IsLibrary reports whether the project jar belongs in the library directory.
func (p *Project) IsLibrary() bool {
	return p.Type == TypeLibrary
}

// EffectiveChannel returns the configured channel or the development default.
func (p *Project) EffectiveChannel(fallback string) string {
	if p.Channel != "" {
		return p.Channel
	}
	if fallback != "" {
		return fallback
	}
	return helpers.DefaultChannel
}

// EffectiveDescription returns the description or its default.
func (p *Project) EffectiveDescription() string {
	if p.Description != "" {
		return p.Description
	}
	return helpers.DefaultDescription
}

// OwnArtifact returns the project's own maven coordinate.
func (p *Project) OwnArtifact() maven.Artifact {
	return maven.NewArtifact(p.Group, p.Name, p.Version)
}

// DependencyArtifacts parses all declared dependency coordinates.
func (p *Project) DependencyArtifacts() ([]maven.Artifact, error) {
	artifacts := make([]maven.Artifact, 0, len(p.Dependencies))
	for _, dep := range p.Dependencies {
		artifact, err := maven.ParseCoordinate(dep)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

// SortedMinecraftVersions returns the game versions in ascending semver order.
//
// Versions that do not parse as semver keep their declared position at the
// end of the list rather than failing the whole sort.
func (p *Project) SortedMinecraftVersions() []string {
	parsed := make([]*semver.Version, 0, len(p.MinecraftVersions))
	unparsed := make([]string, 0)
	for _, raw := range p.MinecraftVersions {
		version, err := semver.NewVersion(raw)
		if err != nil {
			unparsed = append(unparsed, raw)
			continue
		}
		parsed = append(parsed, version)
	}
	sort.Sort(semver.Collection(parsed))

	out := make([]string, 0, len(p.MinecraftVersions))
	for _, version := range parsed {
		out = append(out, version.Original())
	}
	return append(out, unparsed...)
}
