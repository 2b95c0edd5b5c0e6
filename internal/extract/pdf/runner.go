package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
)

// Ensure ExecRunner implements the interface.
var _ driven.CommandRunner = (*ExecRunner)(nil)

// ExecRunner executes external commands via os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the named command and returns its standard output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, stderr.String())
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return stdout.Bytes(), nil
}
