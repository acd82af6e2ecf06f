package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *GroveError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *GroveError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ContractViolation creates an error for API misuse by a caller.
func ContractViolation(reason string) *GroveError {
	return New(ErrCodeContractViolation, reason)
}

// InvalidRoot creates an error for a build whose root is not a container.
func InvalidRoot(kind string) *GroveError {
	return New(ErrCodeInvalidRoot,
		fmt.Sprintf("root value must be an array or object, got %s", kind)).
		WithDetail("kind", kind)
}

// InvalidCollaborator creates an error for a missing build hook.
func InvalidCollaborator(name string) *GroveError {
	return New(ErrCodeInvalidCollaborator, fmt.Sprintf("%s must not be nil", name)).
		WithDetail("collaborator", name)
}

// MissingKey creates an error for a rename of a key that does not exist
func MissingKey(key string) *GroveError {
	return New(ErrCodeMissingKey, fmt.Sprintf("key '%s' not found in object", key)).
		WithDetail("key", key)
}

// CollisionNoop creates the result of an edit that would duplicate a key.
func CollisionNoop(oldKey, newKey string) *GroveError {
	return New(ErrCodeCollisionNoop,
		fmt.Sprintf("key '%s' already exists; '%s' left unchanged", newKey, oldKey)).
		WithDetail("oldKey", oldKey).
		WithDetail("newKey", newKey)
}

// KeyExists creates the result of an insert under a key that is taken.
func KeyExists(key string) *GroveError {
	return New(ErrCodeCollisionNoop, fmt.Sprintf("key '%s' already exists", key)).
		WithDetail("newKey", key)
}

// NotAContainer creates an error for an append on a scalar selection
func NotAContainer(path string) *GroveError {
	return New(ErrCodeNotAContainer,
		fmt.Sprintf("cannot append to %s: not an array or object", path)).
		WithDetail("path", path)
}

// StaleSelection creates an error for an edit against a selection from a
// previous tree.
func StaleSelection() *GroveError {
	return New(ErrCodeStaleSelection, "selection no longer refers to the current tree")
}

// FetchFailure wraps an error from an initial value source
func FetchFailure(source string, err error) *GroveError {
	return Wrap(err, ErrCodeFetchFailure, fmt.Sprintf("failed to fetch document from %s", source)).
		WithDetail("source", source)
}

// DecodeFailed wraps a parse error for the given format
func DecodeFailed(format string, err error) *GroveError {
	return Wrap(err, ErrCodeDecodeFailed, fmt.Sprintf("failed to decode %s document", format)).
		WithDetail("format", format)
}

// CyclicValue creates an error for encoding a value that references itself.
func CyclicValue(path string) *GroveError {
	return New(ErrCodeCyclicValue, fmt.Sprintf("value at %s refers back to one of its ancestors", path)).
		WithDetail("path", path)
}

// QueryFailed wraps a JMESPath compile or evaluation error
func QueryFailed(expr string, err error) *GroveError {
	return Wrap(err, ErrCodeQueryFailed, fmt.Sprintf("query failed: %s", expr)).
		WithDetail("expression", expr)
}
