package env

import (
	"context"
	"fmt"
)

// mergeFunction joins the stripped client and server archives into one.
//
// When both archives carry an entry with the same name the client entry wins.
type mergeFunction struct {
	baseFunction
	client string
	server string
}

// newMergeFunction constructs a merge function over the two stripped jars.
func newMergeFunction(name, client, server, output string) *mergeFunction {
	return &mergeFunction{
		baseFunction: baseFunction{name: name, output: output},
		client:       client,
		server:       server,
	}
}

// Prepare is a no-op; merging needs no auxiliary data.
func (f *mergeFunction) Prepare(_ *Utilities) error {
	return nil
}

// Execute writes the joined archive.
func (f *mergeFunction) Execute(_ context.Context, _ *Utilities) error {
	if err := mergeArchives(f.client, f.server, f.output); err != nil {
		return fmt.Errorf("failed to merge archives: %w", err)
	}
	return nil
}
