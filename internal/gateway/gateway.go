package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FailureKind classifies why an inventory command produced no output.
type FailureKind int

const (
	// ExecutionFailed covers non-zero exit, timeout and every other
	// failure that is not a privilege or installation problem.
	ExecutionFailed FailureKind = iota
	// PermissionDenied means the command ran but refused to report
	// without elevated privileges.
	PermissionDenied
	// NotFound means the command is not installed on this host.
	NotFound
)

func (k FailureKind) String() string {
	switch k {
	case PermissionDenied:
		return "permission denied"
	case NotFound:
		return "not found"
	default:
		return "execution failed"
	}
}

// CommandError is the typed failure returned for one inventory command.
// A failed command never aborts a refresh; callers record the error and
// continue with the remaining sources.
type CommandError struct {
	Command string
	Kind    FailureKind
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Command, e.Kind, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Runner executes one external inventory command and returns its stdout.
// The context bounds the run; implementations must not outlive it.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs real commands with a per-invocation timeout.
type ExecRunner struct {
	Timeout time.Duration
	logger  *zap.Logger
}

// NewExecRunner creates a runner with the given per-command timeout.
func NewExecRunner(timeout time.Duration, logger *zap.Logger) *ExecRunner {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ExecRunner{Timeout: timeout, logger: logger}
}

// Run executes the command and returns stdout, or a *CommandError.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(runCtx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		cmdErr := Classify(name, err, stderr.String(), runCtx.Err())
		r.logger.Warn("inventory command failed",
			zap.String("command", name),
			zap.String("kind", cmdErr.Kind.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, cmdErr
	}

	r.logger.Debug("inventory command completed",
		zap.String("command", name),
		zap.Duration("elapsed", elapsed),
		zap.Int("bytes", stdout.Len()),
	)
	return stdout.Bytes(), nil
}

// Classify maps a raw exec failure onto the gateway taxonomy. stderr is
// consulted because the LVM tools exit 5 for both privilege and metadata
// problems, with the distinction only in their message text.
func Classify(command string, err error, stderr string, ctxErr error) *CommandError {
	kind := ExecutionFailed

	switch {
	case errors.Is(err, exec.ErrNotFound):
		kind = NotFound
	case errors.Is(ctxErr, context.DeadlineExceeded):
		kind = ExecutionFailed
		err = fmt.Errorf("timed out: %w", err)
	case isPermissionMessage(stderr) || isPermissionMessage(err.Error()):
		kind = PermissionDenied
	}

	detail := err
	if msg := firstLine(stderr); msg != "" {
		detail = fmt.Errorf("%w: %s", err, msg)
	}
	return &CommandError{Command: command, Kind: kind, Err: detail}
}

func isPermissionMessage(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "permission denied") ||
		strings.Contains(s, "operation not permitted") ||
		strings.Contains(s, "run as root")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

// IsKind reports whether err is a CommandError of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.Kind == kind
}
