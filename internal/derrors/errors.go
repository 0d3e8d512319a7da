// Package derrors provides typed errors for redtime.
//
// The completion path classifies provider failures with these types so the
// adapter can log precisely while still failing open: none of them ever
// reaches the user as a visible error.
package derrors

import (
	"fmt"
)

// Error is the base interface for all redtime errors.
type Error interface {
	error
	// Code returns a stable error code for programmatic handling.
	Code() string
}

type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ProviderUnavailableError means the completion provider could not be
// spawned at all (binary missing, permission denied).
type ProviderUnavailableError struct {
	baseError
	Bin string
}

// NewProviderUnavailable creates a provider-unavailable error.
func NewProviderUnavailable(bin string, cause error) *ProviderUnavailableError {
	return &ProviderUnavailableError{
		baseError: baseError{
			code:    "PROVIDER_UNAVAILABLE",
			message: fmt.Sprintf("completion provider %s unavailable", bin),
			cause:   cause,
		},
		Bin: bin,
	}
}

// ProviderExitError means the provider ran but exited non-zero.
type ProviderExitError struct {
	baseError
	ExitCode int
}

// NewProviderExit creates a non-zero-exit error.
func NewProviderExit(exitCode int, cause error) *ProviderExitError {
	return &ProviderExitError{
		baseError: baseError{
			code:    "PROVIDER_EXIT",
			message: fmt.Sprintf("completion provider exited with status %d", exitCode),
			cause:   cause,
		},
		ExitCode: exitCode,
	}
}

// TimeoutError means a provider call exceeded its deadline.
type TimeoutError struct {
	baseError
}

// NewTimeout creates a timeout error.
func NewTimeout(cause error) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			code:    "PROVIDER_TIMEOUT",
			message: "completion provider timed out",
			cause:   cause,
		},
	}
}

// ConfigurationError represents errors in redtime configuration files.
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(path, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// CatalogError represents a failure talking to the Redmine catalog.
type CatalogError struct {
	baseError
	Resource string
}

// NewCatalogError creates a catalog error for the given resource.
func NewCatalogError(resource, message string, cause error) *CatalogError {
	return &CatalogError{
		baseError: baseError{
			code:    "CATALOG_ERROR",
			message: message,
			cause:   cause,
		},
		Resource: resource,
	}
}
