package cli

import "github.com/cedartree/cedar/pkg/runner"

// Exit codes for cedar.
const (
	// ExitSuccess indicates successful execution with no syntax errors.
	ExitSuccess = 0

	// ExitSyntaxErrors indicates parsing completed but found syntax errors.
	ExitSyntaxErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a batch run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitIOError
	}
	if result.HasSyntaxErrors() {
		return ExitSyntaxErrors
	}
	return ExitSuccess
}
