package maven

import (
	"fmt"
	"strings"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

const (
	coordinateMinParts = 3
	coordinateMaxParts = 4
)

// Artifact identifies a maven dependency by coordinate.
//
// The zero classifier means the main artifact. Artifacts are value types and
// compare by all four fields.
type Artifact struct {
	Group      string
	Name       string
	Version    string
	Classifier string
}

// NewArtifact creates an Artifact without a classifier.
func NewArtifact(group, name, version string) Artifact {
	return Artifact{Group: group, Name: name, Version: version}
}

// WithClassifier returns a copy of the artifact with the given classifier.
func (a Artifact) WithClassifier(classifier string) Artifact {
	a.Classifier = classifier
	return a
}

// String renders the coordinate as group:name:version[:classifier].
func (a Artifact) String() string {
	if a.Classifier == "" {
		return fmt.Sprintf("%s:%s:%s", a.Group, a.Name, a.Version)
	}
	return fmt.Sprintf("%s:%s:%s:%s", a.Group, a.Name, a.Version, a.Classifier)
}

// FileName returns the artifact jar filename, name-version[-classifier].jar.
func (a Artifact) FileName() string {
	if a.Classifier == "" {
		return fmt.Sprintf("%s-%s%s", a.Name, a.Version, helpers.JarExtension)
	}
	return fmt.Sprintf("%s-%s-%s%s", a.Name, a.Version, a.Classifier, helpers.JarExtension)
}

// FilePath returns the slash-separated repository-relative path of the jar.
//
// The layout is group-with-dots-as-slashes/name/version/FileName and external
// tooling depends on it bit-for-bit, so it must never change shape.
func (a Artifact) FilePath() string {
	return strings.Join([]string{
		strings.ReplaceAll(a.Group, ".", "/"),
		a.Name,
		a.Version,
		a.FileName(),
	}, "/")
}

// ParseCoordinate parses "group:name:version[:classifier]" into an Artifact.
func ParseCoordinate(value string) (Artifact, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < coordinateMinParts || len(parts) > coordinateMaxParts {
		return Artifact{}, fmt.Errorf("%w: %q", helpers.ErrInvalidCoordinate, value)
	}
	for _, part := range parts {
		if part == "" {
			return Artifact{}, fmt.Errorf("%w: %q", helpers.ErrInvalidCoordinate, value)
		}
	}
	artifact := NewArtifact(parts[0], parts[1], parts[2])
	if len(parts) == coordinateMaxParts {
		artifact = artifact.WithClassifier(parts[3])
	}
	return artifact, nil
}
