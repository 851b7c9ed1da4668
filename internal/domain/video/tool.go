package video

import (
	"context"
	"fmt"
	"os/exec"
)

// Runner abstracts an external command-line tool so availability and
// execution can be faked in tests. Available distinguishes a missing
// binary (a soft, skip-the-step condition) from an execution failure.
type Runner interface {
	Available() error
	Run(ctx context.Context, args ...string) ([]byte, error)
}

type execRunner struct {
	bin string
}

// NewRunner returns a Runner invoking bin as a subprocess. bin may be a
// bare name resolved via PATH or an absolute path.
func NewRunner(bin string) Runner {
	return &execRunner{bin: bin}
}

func (r *execRunner) Available() error {
	if _, err := exec.LookPath(r.bin); err != nil {
		return fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}
	return nil
}

// Run executes the tool synchronously and returns its combined
// stdout/stderr. A non-zero exit is returned as a ToolError carrying
// that output.
func (r *execRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, r.bin, args...).CombinedOutput()
	if err != nil {
		return out, &ToolError{Tool: r.bin, Output: out, Err: err}
	}
	return out, nil
}
