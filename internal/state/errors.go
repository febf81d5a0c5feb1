package state

import (
	"errors"
	"fmt"
)

var (
	// ErrGroupNotFound is matched by LookupMissError.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotAuthenticated rejects identity-bearing commands while logged out.
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrProfilePending rejects them while logged in but before the profile has loaded.
	ErrProfilePending = errors.New("profile not loaded yet")
)

// LookupMissError reports a group name that does not resolve to an id.
type LookupMissError struct {
	Name       string
	Suggestion string
}

func (e *LookupMissError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("group %q not found (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("group %q not found", e.Name)
}

func (e *LookupMissError) Is(target error) bool { return target == ErrGroupNotFound }

// FetchError is a failed read of one slice. The slice keeps its last value.
type FetchError struct {
	Slice Slice
	Err   error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Slice, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// MutationError is a failed create or logout. No invalidation runs.
type MutationError struct {
	Command string
	Err     error
}

func (e *MutationError) Error() string { return fmt.Sprintf("%s: %v", e.Command, e.Err) }
func (e *MutationError) Unwrap() error { return e.Err }
