package env

import "context"

// Function is one named step of the deobfuscation pipeline.
//
// A function is constructed with the concrete paths of its inputs (outputs of
// earlier functions) and declares exactly one output path. Prepare performs
// cheap input-only setup such as parsing mapping files; Execute performs the
// transformation and writes the output at the declared path.
type Function interface {
	Name() string
	Output() string
	Prepare(utilities *Utilities) error
	Execute(ctx context.Context, utilities *Utilities) error
}

// baseFunction carries the name and declared output path of a function.
type baseFunction struct {
	name   string
	output string
}

// Name returns the function name.
func (f *baseFunction) Name() string {
	return f.name
}

// Output returns the declared output path.
func (f *baseFunction) Output() string {
	return f.output
}
