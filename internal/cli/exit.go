package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/paramgraph/pkg/errors"
)

// Exit statuses of the paramgraph binary.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitBadInput = 2
	ExitCanceled = 130 // SIGINT
)

// ExitCode maps an error returned by the root command to a process exit
// status. Errors rooted in the user's files, flags or config exit with
// ExitBadInput; cache, network and other runtime failures with ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitCanceled
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidRootKey,
		errors.ErrCodeInvalidEncoding,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig,
		errors.ErrCodeMalformedGraph,
		errors.ErrCodeCapacityExceeded,
		errors.ErrCodeDigestMismatch,
		errors.ErrCodeUnsupported,
		errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound:
		return ExitBadInput
	}
	return ExitFailure
}
