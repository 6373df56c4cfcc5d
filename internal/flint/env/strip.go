package env

import (
	"context"
	"fmt"
	"strings"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

// StripMode selects how the strip function interprets the mapping class set.
type StripMode int

const (
	// Whitelist keeps only class entries listed in the mappings.
	Whitelist StripMode = iota
	// Blacklist drops class entries listed in the mappings.
	Blacklist
)

// stripFunction filters archive entries against the mapping class set.
//
// Entries under assets/ are always retained regardless of mode, since asset
// resources are not subject to class filtering.
type stripFunction struct {
	baseFunction
	mappings string
	input    string
	mode     StripMode
	classes  map[string]struct{}
}

// newStripFunction constructs a strip function over the given archive.
func newStripFunction(name, mappings, input, output string, mode StripMode) *stripFunction {
	return &stripFunction{
		baseFunction: baseFunction{name: name, output: output},
		mappings:     mappings,
		input:        input,
		mode:         mode,
	}
}

// Prepare parses the mapping file into the class set.
func (f *stripFunction) Prepare(_ *Utilities) error {
	mappings, err := parseClassMappings(f.mappings)
	if err != nil {
		return err
	}
	f.classes = classFileSet(mappings)
	return nil
}

// Execute streams the input archive, dropping stripped entries.
func (f *stripFunction) Execute(_ context.Context, _ *Utilities) error {
	if err := transformArchive(f.input, f.output, f.keep, nil); err != nil {
		return fmt.Errorf("failed to strip archive: %w", err)
	}
	return nil
}

// keep reports whether an entry survives the filter.
func (f *stripFunction) keep(name string) bool {
	if strings.HasPrefix(name, helpers.AssetsPrefix) {
		return true
	}
	_, listed := f.classes[name]
	return listed == (f.mode == Whitelist)
}
