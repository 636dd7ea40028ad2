package api

import "fmt"

// OperationError is a handled failure: the service answered with
// success=false and a message meant for the user verbatim.
type OperationError struct {
	Message string
}

func (e *OperationError) Error() string {
	if e.Message == "" {
		return "operation failed"
	}
	return e.Message
}

// NetworkError is a transport-level failure: no connectivity, a
// non-JSON response, or a non-2xx status with no parseable body. The
// caller shows a generic retry-able message.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
