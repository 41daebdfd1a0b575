package types

import "fmt"

// CustomError is a transport-level error carrying an HTTP status code and an
// error type tag for the response envelope. Used by middleware; domain code
// uses the taxonomy errors below.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationError reports malformed or self-inconsistent input. No mutation
// happens once one is raised.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// NotFoundError reports a missing identity, including an identity that exists
// but does not belong to the claimed parent or visibility scope.
type NotFoundError struct {
	Kind string `json:"kind"`
	ID   uint64 `json:"id,omitempty"`
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
	}
	return e.Kind + " not found"
}

// PermissionError reports an authorization denial with a human-readable
// reason. Distinct from list scoping, which silently filters.
type PermissionError struct {
	Reason string `json:"reason"`
}

func (e *PermissionError) Error() string {
	return e.Reason
}

// ConflictError reports a concurrent modification of the same node. Currently
// latent: writes are last-write-wins under transaction isolation and nothing
// raises this yet.
type ConflictError struct {
	Message string `json:"message"`
}

func (e *ConflictError) Error() string {
	return e.Message
}
