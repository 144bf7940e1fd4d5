package commands

import (
	"errors"
	"fmt"
	"io"

	"taskkeep/internal/exitcode"
	"taskkeep/internal/taskerr"
)

// reportError translates the error taxonomy into a user-facing message
// and exit code. Nothing is retried automatically; every failure asks
// for an explicit user retry.
func reportError(errOut io.Writer, err error) int {
	var remote *taskerr.RemoteError
	switch {
	case errors.Is(err, taskerr.ErrOwningListUnknown):
		fmt.Fprintln(errOut, "error: owning list unknown (run: taskkeep sync, then try again)")
		return exitcode.UserError
	case errors.Is(err, taskerr.ErrTaskNotFound):
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	case errors.Is(err, taskerr.ErrSyncInFlight):
		fmt.Fprintln(errOut, "error: a sync is already in progress")
		return exitcode.UserError
	case errors.Is(err, taskerr.ErrStorageUnavailable):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	case errors.As(err, &remote):
		fmt.Fprintf(errOut, "error: %v (try again)\n", err)
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
}
