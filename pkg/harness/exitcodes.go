package harness

import (
	"context"

	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/pkg/aspect"
)

// Exit codes returned by Main and the aspect CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates every test passed.
	ExitSuccess = errors.ExitSuccess

	// ExitFailure indicates a failed test, a context error, or differing snapshots.
	ExitFailure = errors.ExitFailure

	// ExitConfigError indicates an invalid config or snapshot file.
	ExitConfigError = errors.ExitConfigError

	// ExitUsageError indicates a suite misused an assertion and was aborted.
	ExitUsageError = errors.ExitUsageError

	// ExitRuntimeError indicates an I/O or store failure.
	ExitRuntimeError = errors.ExitRuntimeError
)

// ExitCode maps the outcome of a finished context to a process exit code.
func ExitCode(tc *aspect.TestContext, runErr error) int {
	if runErr != nil {
		return errors.GetExitCode(runErr)
	}
	if !tc.Pass() {
		return ExitFailure
	}
	return ExitSuccess
}

// Main runs each context in order and returns the most severe exit code, for
// suites built as standalone binaries:
//
//	func main() {
//		h, err := harness.Load(config.Find("."))
//		...
//		os.Exit(h.Main(context.Background(), mathSuite(h), stringSuite(h)))
//	}
func (h *Harness) Main(ctx context.Context, contexts ...*aspect.TestContext) int {
	code := ExitSuccess
	for _, tc := range contexts {
		c := ExitCode(tc, h.Run(ctx, tc))
		if severity(c) > severity(code) {
			code = c
		}
	}
	return code
}

// severity orders exit codes so that aborts outrank ordinary failures.
func severity(code int) int {
	switch code {
	case ExitSuccess:
		return 0
	case ExitFailure:
		return 1
	default:
		return 2
	}
}
