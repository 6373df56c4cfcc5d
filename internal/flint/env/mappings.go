package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

// classMapping maps one obfuscated class record to its readable name.
type classMapping struct {
	Obfuscated string
	Readable   string
}

// parseClassMappings reads the class records of a mapping file.
//
// One unindented line per class, "obfuscated readable"; indented lines are
// member records and are ignored here. A class line without both fields is a
// malformed mapping file, reported with its line number rather than as a raw
// I/O failure.
func parseClassMappings(path string) ([]classMapping, error) {
	//nolint:gosec // path points at a fetched mapping file inside the cache dir.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping file %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var mappings []classMapping
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" || strings.HasPrefix(text, "\t") || strings.HasPrefix(text, " ") {
			continue
		}
		fields := strings.SplitN(text, " ", 3)
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("%w: %s line %d: %q", helpers.ErrMalformedMappings, path, line, text)
		}
		mappings = append(mappings, classMapping{Obfuscated: fields[0], Readable: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	return mappings, nil
}

// classFileSet returns the set of obfuscated class entry names, "name.class".
func classFileSet(mappings []classMapping) map[string]struct{} {
	set := make(map[string]struct{}, len(mappings))
	for _, mapping := range mappings {
		set[mapping.Obfuscated+".class"] = struct{}{}
	}
	return set
}

// classRenameTable returns the entry rename table, "obf.class" to "readable.class".
func classRenameTable(mappings []classMapping) map[string]string {
	table := make(map[string]string, len(mappings))
	for _, mapping := range mappings {
		table[mapping.Obfuscated+".class"] = mapping.Readable + ".class"
	}
	return table
}
