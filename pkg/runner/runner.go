// Package runner executes the external tool under test. It feeds case
// inputs to the configured command line and captures the output, it never
// interprets what the tool does.
package runner

import (
	"bytes"
	"context"
	goerrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/hashicorp/go-version"
)

const (
	// DefaultTimeout bounds a single tool invocation when the suite does
	// not configure one.
	DefaultTimeout = 2 * time.Minute

	// ProbeTimeout bounds the version probe.
	ProbeTimeout = 10 * time.Second

	// VersionUnknown is reported when the tool version cannot be probed.
	// Cases with a tool constraint are skipped under it.
	VersionUnknown = "unknown"

	// waitDelay unblocks Wait when a grandchild process inherits the
	// output pipes past cancellation.
	waitDelay = 5 * time.Second
)

// Invocation describes a single tool run. Command is a shell command line
// with the placeholders {input}, {output}, {case} and {suite_root}.
// Placeholder values are substituted verbatim, templates must quote paths
// that may contain spaces. When the template references {output} the tool
// is expected to write its result to that file, otherwise stdout is taken
// as the result.
type Invocation struct {
	Command   string
	Input     string
	Case      string
	SuiteRoot string
	Timeout   time.Duration
}

// Result is the captured outcome of one tool run.
type Result struct {
	// Output is the actual output, read from stdout or the {output} file.
	Output []byte
	// Stderr is the complete standard error text.
	Stderr string
	// Duration is the wall clock time of the invocation.
	Duration time.Duration
}

// ExecRunner runs the tool through the platform shell, bash on unix and
// powershell on windows.
type ExecRunner struct {
	// ProbeCommand is the command line Probe runs, for example
	// "refactor-tool --version". Empty disables probing.
	ProbeCommand string
	// Env entries are appended to the inherited process environment.
	Env []string
}

// NewExecRunner creates an ExecRunner with the given version probe command.
func NewExecRunner(probeCommand string) *ExecRunner {
	return &ExecRunner{ProbeCommand: probeCommand}
}

// Run executes the tool for one case. The invocation runs with the suite
// root as working directory and is killed after the timeout.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (*Result, error) {
	if strings.TrimSpace(inv.Command) == "" {
		return nil, errors.ErrToolCommandEmpty
	}

	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	outputPath := ""
	captureFile := strings.Contains(inv.Command, "{output}")
	if captureFile {
		tmp, err := os.CreateTemp("", "goldfix-actual-*"+filepath.Ext(inv.Input))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create output capture file")
		}
		outputPath = tmp.Name()
		if err := tmp.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to close output capture file")
		}
		defer func() { _ = os.Remove(outputPath) }()
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := shellCommand(execCtx, expand(inv, outputPath))
	cmd.Dir = inv.SuiteRoot
	cmd.Env = append(os.Environ(), r.Env...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	res := &Result{
		Output:   stdout.Bytes(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if runErr != nil {
		switch {
		case execCtx.Err() == context.DeadlineExceeded:
			return res, errors.Wrapf(errors.ErrToolFailure, "tool timed out after %s", timeout)
		case execCtx.Err() != nil:
			return res, execCtx.Err()
		}
		var exitErr *exec.ExitError
		if goerrors.As(runErr, &exitErr) {
			msg := firstLine(res.Stderr)
			if msg == "" {
				return res, errors.Wrapf(errors.ErrToolFailure, "exit status %d", exitErr.ExitCode())
			}
			return res, errors.Wrapf(errors.ErrToolFailure, "exit status %d: %s", exitErr.ExitCode(), msg)
		}
		return res, errors.Wrap(runErr, "failed to start tool")
	}

	if captureFile {
		data, err := os.ReadFile(outputPath)
		if err != nil {
			return res, errors.Wrapf(errors.ErrToolFailure, "tool wrote no output file: %v", err)
		}
		res.Output = data
	}
	return res, nil
}

// Probe runs the configured probe command and extracts the tool version
// from the first line of its output. Any failure degrades to
// VersionUnknown.
func (r *ExecRunner) Probe(ctx context.Context) string {
	if strings.TrimSpace(r.ProbeCommand) == "" {
		return VersionUnknown
	}

	probeCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	cmd := shellCommand(probeCtx, r.ProbeCommand)
	cmd.Env = append(os.Environ(), r.Env...)
	cmd.WaitDelay = waitDelay

	out, err := cmd.CombinedOutput()
	if err != nil {
		return VersionUnknown
	}
	return VersionFromLine(firstLine(string(out)))
}

// VersionFromLine extracts the first token of a probe output line that
// parses as a version, so "refactor-tool 2.1.3 (linux amd64)" yields
// "2.1.3". Lines without one yield VersionUnknown.
func VersionFromLine(line string) string {
	for _, field := range strings.Fields(line) {
		if v, err := version.NewVersion(field); err == nil {
			return v.String()
		}
	}
	return VersionUnknown
}

func shellCommand(ctx context.Context, cmdline string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", cmdline)
	}
	return exec.CommandContext(ctx, "bash", "-lc", cmdline)
}

func expand(inv Invocation, outputPath string) string {
	return strings.NewReplacer(
		"{input}", inv.Input,
		"{output}", outputPath,
		"{case}", inv.Case,
		"{suite_root}", inv.SuiteRoot,
	).Replace(inv.Command)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
