package result

import (
	"fmt"
	"strings"
)

// ConfigurationError is returned when a required scoping identifier
// (brandId, pointId, orderType, ...) is missing at call time. It is raised
// before any network request is issued; the caller can always recover by
// supplying the missing value.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	switch len(e.Missing) {
	case 0:
		return "required configuration is missing"
	case 1:
		return e.Missing[0] + " is required"
	case 2:
		return e.Missing[0] + " and " + e.Missing[1] + " are required"
	default:
		head := strings.Join(e.Missing[:len(e.Missing)-1], ", ")
		return head + ", and " + e.Missing[len(e.Missing)-1] + " are required"
	}
}

// ValidationError is a locally-checked business-rule violation on write
// input, raised before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NetworkError wraps a transport-level failure (connectivity, non-2xx,
// GraphQL error payload) together with the operation that triggered it.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
