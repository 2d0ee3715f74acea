package donor

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated signals the server rejected the call for lack of a
// valid session. Callers redirect to login instead of showing an error.
var ErrUnauthenticated = errors.New("session is not authenticated")

// ErrAlreadyJoined is the conflict outcome of a join call. It is success
// semantics for the client: the desired membership already holds.
var ErrAlreadyJoined = errors.New("already participating in this campaign")

// NetworkError marks a transport-level failure talking to the platform.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError marks a malformed response body.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ServerRejectedError carries a non-success, non-conflict server verdict.
type ServerRejectedError struct {
	StatusCode int
	Reason     string
}

func (e *ServerRejectedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("server rejected request (%d)", e.StatusCode)
}

// ProgrammingError marks an invalid state-machine transition attempted by a
// caller. In strict mode these panic instead of being returned.
type ProgrammingError struct {
	Op     string
	Reason string
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
