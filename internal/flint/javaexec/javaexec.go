package javaexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

// Helper runs jar files through a configured java binary.
type Helper struct {
	JavaBinary string
}

// New creates a Helper, defaulting the binary to "java".
func New(javaBinary string) *Helper {
	if javaBinary == "" {
		javaBinary = "java"
	}
	return &Helper{JavaBinary: javaBinary}
}

// RunJar executes "java -jar <jar> <args...>" in workDir and waits.
//
// An empty workDir runs in the current directory. Combined output is captured
// and attached to the error on failure so the tool's own diagnostics are not
// lost.
func (h *Helper) RunJar(ctx context.Context, jar, workDir string, args ...string) error {
	cmdArgs := append([]string{"-jar", jar}, args...)
	//nolint:gosec // binary and jar paths come from tool configuration.
	cmd := exec.CommandContext(ctx, h.JavaBinary, cmdArgs...)
	cmd.Dir = workDir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s -jar %s: %w: %s",
			helpers.ErrJavaExecFailed, h.JavaBinary, jar, err, bytes.TrimSpace(output.Bytes()))
	}
	return nil
}
