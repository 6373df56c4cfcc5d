package env

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

// renameFunction applies the class mapping to archive entry names.
//
// When an external remapper jar is configured it is invoked through the
// execution helper; otherwise a streaming in-process rename is performed.
type renameFunction struct {
	baseFunction
	mappings    string
	input       string
	remapperJar string
	table       map[string]string
}

// newRenameFunction constructs a rename function over the joined jar.
func newRenameFunction(name, mappings, input, output, remapperJar string) *renameFunction {
	return &renameFunction{
		baseFunction: baseFunction{name: name, output: output},
		mappings:     mappings,
		input:        input,
		remapperJar:  remapperJar,
	}
}

// Prepare parses the mapping file into the rename table.
func (f *renameFunction) Prepare(_ *Utilities) error {
	mappings, err := parseClassMappings(f.mappings)
	if err != nil {
		return err
	}
	f.table = classRenameTable(mappings)
	return nil
}

// Execute produces the deobfuscated archive.
func (f *renameFunction) Execute(ctx context.Context, utilities *Utilities) error {
	if f.remapperJar != "" && utilities.Exec != nil {
		return f.executeExternal(ctx, utilities)
	}
	if err := transformArchive(f.input, f.output, nil, f.rename); err != nil {
		return fmt.Errorf("failed to rename archive entries: %w", err)
	}
	return nil
}

// executeExternal delegates the rename to the configured remapper jar.
func (f *renameFunction) executeExternal(ctx context.Context, utilities *Utilities) error {
	err := utilities.Exec.RunJar(
		ctx,
		f.remapperJar,
		filepath.Dir(f.output),
		"--input", f.input,
		"--output", f.output,
		"--mappings", f.mappings,
	)
	if err != nil {
		return fmt.Errorf("remapper failed for %s: %w", f.input, err)
	}
	if _, statErr := os.Stat(f.output); statErr != nil {
		return fmt.Errorf("%w: %s after remapper run", helpers.ErrFunctionOutputMissing, f.output)
	}
	return nil
}

// rename maps an entry name through the class table.
func (f *renameFunction) rename(name string) string {
	if renamed, ok := f.table[name]; ok {
		return renamed
	}
	return name
}
