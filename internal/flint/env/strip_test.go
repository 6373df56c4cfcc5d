package env

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStripWhitelistKeepsMappedClassesAndAssets(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	input := filepath.Join(dir, "input.jar")
	output := filepath.Join(dir, "output.jar")
	writeTestArchive(t, input, map[string]string{
		"a.class":            "mapped",
		"c.class":            "unmapped",
		"assets/texture.png": "asset",
		"META-INF/MANIFEST.MF": "manifest",
	})
	mappings := writeTestMappings(t, "a net/minecraft/ClassA\nb net/minecraft/ClassB\n")

	function := newStripFunction("stripClient", mappings, input, output, Whitelist)
	runTestFunction(t, function)

	entries := readTestArchive(t, output)
	if _, ok := entries["a.class"]; !ok {
		t.Fatalf("mapped class must survive a whitelist strip")
	}
	if _, ok := entries["c.class"]; ok {
		t.Fatalf("unmapped class must be stripped")
	}
	if _, ok := entries["assets/texture.png"]; !ok {
		t.Fatalf("assets entries must always survive")
	}
	if _, ok := entries["META-INF/MANIFEST.MF"]; ok {
		t.Fatalf("non-asset non-class entries must be stripped in whitelist mode")
	}
}

func TestStripBlacklistDropsMappedClasses(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	input := filepath.Join(dir, "input.jar")
	output := filepath.Join(dir, "output.jar")
	writeTestArchive(t, input, map[string]string{
		"a.class":         "mapped",
		"c.class":         "unmapped",
		"assets/lang.txt": "asset",
	})
	mappings := writeTestMappings(t, "a net/minecraft/ClassA\n")

	function := newStripFunction("stripServer", mappings, input, output, Blacklist)
	runTestFunction(t, function)

	entries := readTestArchive(t, output)
	if _, ok := entries["a.class"]; ok {
		t.Fatalf("mapped class must be dropped in blacklist mode")
	}
	if _, ok := entries["c.class"]; !ok {
		t.Fatalf("unmapped class must survive in blacklist mode")
	}
	if _, ok := entries["assets/lang.txt"]; !ok {
		t.Fatalf("assets entries must always survive")
	}
}

func runTestFunction(t *testing.T, function Function) {
	t.Helper()
	utilities := &Utilities{Output: nopPrinter{}}
	if err := function.Prepare(utilities); err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	if err := function.Execute(context.Background(), utilities); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
}
