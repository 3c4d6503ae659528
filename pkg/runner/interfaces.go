package runner

import "context"

// Runner executes the tool under test.
type Runner interface {
	// Run performs one tool invocation and returns the captured output.
	// On failure the result still carries stderr and timing for
	// diagnostics.
	Run(ctx context.Context, inv Invocation) (*Result, error)

	// Probe reports the tool version, VersionUnknown when it cannot be
	// determined.
	Probe(ctx context.Context) string
}
