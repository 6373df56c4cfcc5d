package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

const validProjectYAML = `group: net.example
name: mymod
version: 1.2.3
flint_version: "2.0.0"
type: package
install_jar: true
minecraft_versions:
  - "1.16.5"
  - "1.15.2"
dependencies:
  - com.google.guava:guava:30.1
static_files:
  - url: https://cdn.example/natives.jar
    path: libraries/natives.jar
    os: linux
json_patches:
  - file: launcher_profiles.json
    type: modify_object
    path: [profiles]
    key: flint
    value: enabled
`

func TestLoadValidProject(t *testing.T) {
	t.Parallel()
	proj := loadTestProject(t, validProjectYAML)

	if proj.Group != "net.example" || proj.Name != "mymod" {
		t.Fatalf("unexpected coordinates: %s:%s", proj.Group, proj.Name)
	}
	if proj.IsLibrary() {
		t.Fatalf("package project must not report as library")
	}
	if !proj.InstallJar {
		t.Fatalf("install_jar must be parsed")
	}
	if own := proj.OwnArtifact().String(); own != "net.example:mymod:1.2.3" {
		t.Fatalf("unexpected own artifact %q", own)
	}
	deps, err := proj.DependencyArtifacts()
	if err != nil {
		t.Fatalf("DependencyArtifacts error: %v", err)
	}
	if len(deps) != 1 || deps[0].Name != "guava" {
		t.Fatalf("unexpected dependencies: %+v", deps)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "missing flint version",
			yaml:    "group: g\nname: n\nversion: 1.0.0\n",
			wantErr: helpers.ErrMissingFlintVersion,
		},
		{
			name:    "bad project version",
			yaml:    "group: g\nname: n\nversion: not-semver\nflint_version: \"2.0.0\"\n",
			wantErr: helpers.ErrInvalidVersion,
		},
		{
			name:    "bad dependency coordinate",
			yaml:    "group: g\nname: n\nversion: 1.0.0\nflint_version: \"2.0.0\"\ndependencies: [broken]\n",
			wantErr: helpers.ErrInvalidCoordinate,
		},
		{
			name: "static file with url and source",
			yaml: "group: g\nname: n\nversion: 1.0.0\nflint_version: \"2.0.0\"\n" +
				"static_files:\n  - url: https://x\n    source: local.jar\n    path: p.jar\n",
			wantErr: helpers.ErrInvalidStaticFile,
		},
		{
			name: "object patch without key",
			yaml: "group: g\nname: n\nversion: 1.0.0\nflint_version: \"2.0.0\"\n" +
				"json_patches:\n  - file: f.json\n    type: modify_object\n    value: v\n",
			wantErr: helpers.ErrInvalidJSONPatch,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := loadTestProjectErr(t, tc.yaml)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestEffectiveDefaults(t *testing.T) {
	t.Parallel()
	proj := &Project{}
	if got := proj.EffectiveChannel(""); got != helpers.DefaultChannel {
		t.Fatalf("EffectiveChannel() = %q", got)
	}
	if got := proj.EffectiveChannel("beta"); got != "beta" {
		t.Fatalf("EffectiveChannel(beta) = %q", got)
	}
	proj.Channel = "release"
	if got := proj.EffectiveChannel("beta"); got != "release" {
		t.Fatalf("declared channel must win, got %q", got)
	}
	if got := proj.EffectiveDescription(); got != helpers.DefaultDescription {
		t.Fatalf("EffectiveDescription() = %q", got)
	}
}

func TestSortedMinecraftVersions(t *testing.T) {
	t.Parallel()
	proj := &Project{MinecraftVersions: []string{"1.16.5", "1.8.9", "1.15.2", "weird"}}
	got := proj.SortedMinecraftVersions()
	want := []string{"1.8.9", "1.15.2", "1.16.5", "weird"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortedMinecraftVersions() = %v, want %v", got, want)
	}
}

func loadTestProject(t *testing.T, yaml string) *Project {
	t.Helper()
	proj, err := loadTestProjectErr(t, yaml)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return proj
}

func loadTestProjectErr(t *testing.T, yaml string) (*Project, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), helpers.ProjectFileName)
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return Load(path)
}
