// Package taskerr defines the error taxonomy shared by the cache, sync,
// and mutation layers.
package taskerr

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable indicates the local cache cannot be read or
// written. Callers must degrade to network-only mode rather than fail.
var ErrStorageUnavailable = errors.New("local storage unavailable")

// ErrOwningListUnknown indicates a mutation was requested for a task
// whose list membership cannot be resolved, typically a stale cache.
// The remedy is a manual sync; nothing is retried.
var ErrOwningListUnknown = errors.New("owning list unknown (sync and try again)")

// ErrSyncInFlight indicates a sync was requested while another one was
// still running. The second request is rejected, never interleaved.
var ErrSyncInFlight = errors.New("sync already in progress")

// ErrTaskNotFound indicates the task id does not exist in the current
// in-memory collection.
var ErrTaskNotFound = errors.New("task not found")

// RemoteError is any non-2xx response from the remote task provider.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote provider error: HTTP %d", e.Status)
	}
	return fmt.Sprintf("remote provider error: HTTP %d: %s", e.Status, e.Message)
}

// SyncError wraps the failure that aborted a full sync. The previously
// cached snapshot is guaranteed untouched.
type SyncError struct {
	Cause error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync failed: %v", e.Cause)
}

func (e *SyncError) Unwrap() error { return e.Cause }

// Storage wraps a low-level storage failure so that callers can detect
// it with errors.Is(err, ErrStorageUnavailable).
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
