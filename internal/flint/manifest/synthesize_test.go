package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/project"
	"github.com/lukeha98/flint-gradle/internal/flint/store"
)

// recordingPrinter captures warnings for assertions.
type recordingPrinter struct {
	warnings []string
}

func (p *recordingPrinter) Printf(string, ...any)           {}
func (p *recordingPrinter) PersistentPrintf(string, ...any) {}
func (p *recordingPrinter) Warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}
func (p *recordingPrinter) Debugf(string, ...any)                 {}
func (p *recordingPrinter) DebugSincef(time.Time, string, ...any) {}

func TestSynthesizeMavenInstructions(t *testing.T) {
	t.Parallel()
	proj := &project.Project{
		Group:             "net.example",
		Name:              "mymod",
		Version:           "1.0.0",
		FlintVersion:      "2.0.0",
		MinecraftVersions: []string{"1.16.5", "1.15.2"},
		Dependencies:      []string{"com.google.guava:guava:30.1"},
	}
	st := store.New()
	st.SetResolvedURL("com.google.guava:guava:30.1", "https://repo.example/guava.jar")

	pkg := synthesize(t, proj, st)

	if pkg.Channel != helpers.DefaultChannel {
		t.Fatalf("unexpected channel %q", pkg.Channel)
	}
	if pkg.Description != helpers.DefaultDescription {
		t.Fatalf("unexpected description %q", pkg.Description)
	}
	if pkg.MinecraftVersions != "1.15.2,1.16.5" {
		t.Fatalf("unexpected minecraft versions %q", pkg.MinecraftVersions)
	}
	if len(pkg.Instructions) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(pkg.Instructions))
	}
	instruction := pkg.Instructions[0]
	if instruction.Type != TypeDownloadMavenDependency {
		t.Fatalf("unexpected instruction type %q", instruction.Type)
	}
	wantPath := helpers.LibraryDirToken + "/com/google/guava/guava/30.1/guava-30.1.jar"
	if instruction.DownloadMavenDependency.Path != wantPath {
		t.Fatalf("unexpected path %q, want %q", instruction.DownloadMavenDependency.Path, wantPath)
	}
	if len(pkg.RuntimeClasspath) != 1 || pkg.RuntimeClasspath[0] != wantPath {
		t.Fatalf("unexpected classpath %v", pkg.RuntimeClasspath)
	}
}

func TestSynthesizeFailsWithoutResolvedURL(t *testing.T) {
	t.Parallel()
	proj := &project.Project{
		Group: "g", Name: "n", Version: "1.0.0", FlintVersion: "2.0.0",
		Dependencies: []string{"g:missing:1.0"},
	}
	synthesizer := &Synthesizer{Project: proj, Store: store.New(), Output: &recordingPrinter{}}
	_, err := synthesizer.Synthesize()
	if !errors.Is(err, helpers.ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestOwnInstructionByRole(t *testing.T) {
	t.Parallel()
	library := &project.Project{
		Group: "net.example", Name: "mylib", Version: "1.0.0", FlintVersion: "2.0.0",
		Type: project.TypeLibrary, InstallJar: true,
	}
	pkg := synthesize(t, library, store.New())
	wantLib := helpers.LibraryDirToken + "/net/example/mylib/1.0.0/mylib-1.0.0.jar"
	if got := pkg.Instructions[0].DownloadMavenDependency.Path; got != wantLib {
		t.Fatalf("library path %q, want %q", got, wantLib)
	}
	if got := pkg.Instructions[0].DownloadMavenDependency.URL; got != helpers.DistributorURLToken+helpers.DefaultChannel {
		t.Fatalf("unexpected distributor URL %q", got)
	}

	asPackage := &project.Project{
		Group: "net.example", Name: "mymod", Version: "1.0.0", FlintVersion: "2.0.0",
		Type: project.TypePackage, InstallJar: true,
	}
	pkg = synthesize(t, asPackage, store.New())
	wantPkg := helpers.PackageDirToken + "/mymod.jar"
	if got := pkg.Instructions[0].DownloadMavenDependency.Path; got != wantPkg {
		t.Fatalf("package path %q, want %q", got, wantPkg)
	}
}

func TestClasspathExcludesOwnArtifact(t *testing.T) {
	t.Parallel()
	// The project depends on its own coordinate; the shared library entry must
	// not appear on the classpath a second time.
	proj := &project.Project{
		Group: "net.example", Name: "mylib", Version: "1.0.0", FlintVersion: "2.0.0",
		Type: project.TypeLibrary, InstallJar: true,
		Dependencies: []string{"net.example:mylib:1.0.0", "g:other:2.0"},
	}
	st := store.New()
	st.SetResolvedURL("net.example:mylib:1.0.0", "https://repo.example/mylib.jar")
	st.SetResolvedURL("g:other:2.0", "https://repo.example/other.jar")

	pkg := synthesize(t, proj, st)
	for _, path := range pkg.RuntimeClasspath {
		if path == helpers.LibraryDirToken+"/net/example/mylib/1.0.0/mylib-1.0.0.jar" {
			t.Fatalf("own artifact must not be on the classpath: %v", pkg.RuntimeClasspath)
		}
	}
	if len(pkg.RuntimeClasspath) != 1 {
		t.Fatalf("expected 1 classpath entry, got %v", pkg.RuntimeClasspath)
	}
}

func TestStaticFileChecksumGate(t *testing.T) {
	t.Parallel()
	proj := &project.Project{
		Group: "g", Name: "n", Version: "1.0.0", FlintVersion: "2.0.0",
		StaticFiles: []project.StaticFile{
			{URL: "https://cdn.example/natives.jar", Path: "libraries/natives.jar"},
		},
	}
	synthesizer := &Synthesizer{Project: proj, Store: store.New(), Output: &recordingPrinter{}}
	_, err := synthesizer.Synthesize()
	if !errors.Is(err, helpers.ErrMissingChecksum) {
		t.Fatalf("expected ErrMissingChecksum, got %v", err)
	}

	st := store.New()
	st.SetChecksum("https://cdn.example/natives.jar", store.Checksum{SHA256: "abc", Size: 7})
	pkg := synthesize(t, proj, st)
	if len(pkg.Instructions) != 1 || pkg.Instructions[0].Type != TypeDownloadFile {
		t.Fatalf("unexpected instructions %+v", pkg.Instructions)
	}
	if pkg.Instructions[0].DownloadFile.Checksum.SHA256 != "abc" {
		t.Fatalf("checksum must be carried on the instruction")
	}
	// Jar static files join the runtime classpath.
	if len(pkg.RuntimeClasspath) != 1 || pkg.RuntimeClasspath[0] != "libraries/natives.jar" {
		t.Fatalf("unexpected classpath %v", pkg.RuntimeClasspath)
	}
}

func TestJSONPatchMerging(t *testing.T) {
	t.Parallel()
	proj := &project.Project{
		Group: "g", Name: "n", Version: "1.0.0", FlintVersion: "2.0.0",
		JSONPatches: []project.JSONPatch{
			{File: "a.json", Pretty: true, Type: project.PatchModifyArray, Path: []string{"list"}, Value: "x"},
			{File: "a.json", Pretty: true, Type: project.PatchModifyObject, Key: "k", Value: "y"},
			{File: "a.json", Pretty: false, Type: project.PatchModifyArray, Value: "z"},
			{File: "b.json", Pretty: true, Type: project.PatchModifyArray, Value: "w"},
		},
	}
	pkg := synthesize(t, proj, store.New())
	if len(pkg.Instructions) != 3 {
		t.Fatalf("expected 3 merged instructions, got %d", len(pkg.Instructions))
	}
	first := pkg.Instructions[0].ModifyJSONFile
	if first.Path != "a.json" || !first.Pretty || len(first.Injections) != 2 {
		t.Fatalf("patches on the same file and flag must merge: %+v", first)
	}
	if first.Injections[0].Type != project.PatchModifyArray || first.Injections[1].Key != "k" {
		t.Fatalf("injection order must follow declaration order: %+v", first.Injections)
	}
}

func TestInstructionStructuralDedup(t *testing.T) {
	t.Parallel()
	proj := &project.Project{
		Group: "g", Name: "n", Version: "1.0.0", FlintVersion: "2.0.0",
		Dependencies: []string{"g:dep:1.0", "g:dep:1.0"},
	}
	st := store.New()
	st.SetResolvedURL("g:dep:1.0", "https://repo.example/dep.jar")

	pkg := synthesize(t, proj, st)
	if len(pkg.Instructions) != 1 {
		t.Fatalf("duplicate dependency edges must collapse, got %d instructions", len(pkg.Instructions))
	}
	if len(pkg.RuntimeClasspath) != 1 {
		t.Fatalf("duplicate classpath entries must collapse, got %v", pkg.RuntimeClasspath)
	}
}

func TestProjectDependencyWarnings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	siblingDir := filepath.Join(dir, "sibling")
	if err := os.MkdirAll(siblingDir, 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	siblingYAML := "group: net.example\nname: sibling\nversion: 2.0.0\nflint_version: \"2.0.0\"\nchannel: beta\n"
	if err := os.WriteFile(filepath.Join(siblingDir, helpers.ProjectFileName), []byte(siblingYAML), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	rootYAML := "group: net.example\nname: root\nversion: 1.0.0\nflint_version: \"2.0.0\"\n" +
		"projects: [sibling, missing]\n"
	rootPath := filepath.Join(dir, helpers.ProjectFileName)
	if err := os.WriteFile(rootPath, []byte(rootYAML), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	proj, err := project.Load(rootPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	printer := &recordingPrinter{}
	synthesizer := &Synthesizer{Project: proj, Store: store.New(), Output: printer}
	pkg, err := synthesizer.Synthesize()
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}

	if len(pkg.Dependencies) != 1 {
		t.Fatalf("expected 1 package dependency, got %+v", pkg.Dependencies)
	}
	dep := pkg.Dependencies[0]
	if dep.Name != "sibling" || dep.Version != "2.0.0" || dep.Channel != "beta" {
		t.Fatalf("unexpected dependency %+v", dep)
	}
	if len(printer.warnings) != 1 {
		t.Fatalf("a missing sibling descriptor must warn, got %v", printer.warnings)
	}
}

func synthesize(t *testing.T, proj *project.Project, st *store.Store) *Package {
	t.Helper()
	synthesizer := &Synthesizer{Project: proj, Store: st, Output: &recordingPrinter{}}
	pkg, err := synthesizer.Synthesize()
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}
	return pkg
}
