package env

import (
	"path/filepath"
	"testing"
)

func TestRenameAppliesClassTable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	input := filepath.Join(dir, "joined.jar")
	output := filepath.Join(dir, "deobfuscated.jar")
	writeTestArchive(t, input, map[string]string{
		"a.class":            "bytecode-a",
		"unmapped.class":     "bytecode-u",
		"assets/texture.png": "asset",
	})
	mappings := writeTestMappings(t, "a net/minecraft/ClassA\n")

	function := newRenameFunction("rename", mappings, input, output, "")
	runTestFunction(t, function)

	entries := readTestArchive(t, output)
	if entries["net/minecraft/ClassA.class"] != "bytecode-a" {
		t.Fatalf("mapped class must be renamed, got entries %+v", entries)
	}
	if _, ok := entries["a.class"]; ok {
		t.Fatalf("obfuscated name must not remain after renaming")
	}
	if entries["unmapped.class"] != "bytecode-u" {
		t.Fatalf("unmapped entries must keep their name")
	}
	if entries["assets/texture.png"] != "asset" {
		t.Fatalf("asset entries must pass through untouched")
	}
}
