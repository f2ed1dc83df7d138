// Package common defines shared constants and sentinel errors used across
// the chatfiles client layers. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors: the file was rejected before any I/O happened.
	ErrValidation = errors.New("validation failed")

	// Network errors: the request never produced a usable response.
	ErrNetwork = errors.New("network error")

	// Protocol errors: a response arrived but its body did not match the
	// expected shape.
	ErrProtocol = errors.New("unexpected response")

	// Local persistence errors (quota exhaustion, serialization). An entry
	// is either fully present or absent; there are no partial writes.
	ErrStorageQuota = errors.New("local storage failure")
)

// ConfigurationError reports required configuration keys that were absent at
// load time. Configuration fails fast at construction rather than deferring
// the failure to first use.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}
