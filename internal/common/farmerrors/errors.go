// Package farmerrors contains the typed errors returned while loading job-info settings and while
// resolving job info for a single publish.
//
// Load-time errors (ErrDuplicateName, ErrUnsupportedOverrideKey and configuration ErrInvalidArgument)
// indicate an administrator mistake and must block the load. If multiple errors occur while loading,
// the loader returns a multierror.Error from package github.com/hashicorp/go-multierror that
// encapsulates the individual errors; errors.As still finds each of them.
//
// Per-job errors (ErrRuleExpansion, artist value ErrInvalidArgument) fail only the publish that
// triggered them.
package farmerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Exit codes returned by jobinfoctl for the error types below.
const (
	ExitCodeOk              = 0
	ExitCodeUnknown         = 1
	ExitCodeInvalidArgument = 2
	ExitCodeConfiguration   = 3
	ExitCodeResolution      = 4
)

// ErrDuplicateName is returned when two entries of a named list share the same non-empty name.
// Type is optional and names the list, e.g., "scene_patches".
type ErrDuplicateName struct {
	Type string
	Name string
}

func (err *ErrDuplicateName) Error() string {
	if err.Type != "" {
		return fmt.Sprintf("duplicate name %q in %s", err.Name, err.Type)
	}
	return fmt.Sprintf("duplicate name %q", err.Name)
}

// ErrRuleExpansion is returned when an environment search/replace rule still finds its own search
// text after the maximum number of passes, e.g., a rule replacing "A" with "AA".
type ErrRuleExpansion struct {
	RuleName   string
	Iterations int
}

func (err *ErrRuleExpansion) Error() string {
	return fmt.Sprintf("environment rule %q did not converge after %d replacements", err.RuleName, err.Iterations)
}

// ErrUnsupportedOverrideKey is returned when a profile exposes an override outside the canonical set.
// Profile is the index of the profile in its list, or -1 if unknown.
type ErrUnsupportedOverrideKey struct {
	Key     string
	Profile int
}

func (err *ErrUnsupportedOverrideKey) Error() string {
	if err.Profile >= 0 {
		return fmt.Sprintf("profile %d exposes unsupported override %q", err.Profile, err.Key)
	}
	return fmt.Sprintf("unsupported override %q", err.Key)
}

// ErrInvalidArgument is a generic error to be returned on an invalid setting or artist value.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "priority"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message to include with the error message, e.g., explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", fmt.Sprint(err.Value), err.Name)
	}
	return fmt.Sprintf("value %q is invalid for field %q; %s", fmt.Sprint(err.Value), err.Name, err.Message)
}

// ErrInvalidConfiguration wraps every error found while loading a settings source,
// so that callers can tell a rejected configuration apart from a failed resolution.
type ErrInvalidConfiguration struct {
	Source string
	Err    error
}

func (err *ErrInvalidConfiguration) Error() string {
	if err.Source == "" {
		return fmt.Sprintf("invalid configuration: %s", err.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %s", err.Source, err.Err)
}

func (err *ErrInvalidConfiguration) Unwrap() error {
	return err.Err
}

// IsConfigurationError reports whether err (or any error it wraps) is a load-time configuration error.
func IsConfigurationError(err error) bool {
	{
		var e *ErrInvalidConfiguration
		if errors.As(err, &e) {
			return true
		}
	}
	{
		var e *ErrDuplicateName
		if errors.As(err, &e) {
			return true
		}
	}
	{
		var e *ErrUnsupportedOverrideKey
		if errors.As(err, &e) {
			return true
		}
	}
	return false
}

// ExitCodeFromError maps error types to process exit codes.
// Uses errors.As to look through the chain of errors, as opposed to just considering the topmost error in the chain.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitCodeOk
	}
	if IsConfigurationError(err) {
		return ExitCodeConfiguration
	}
	{
		var e *ErrRuleExpansion
		if errors.As(err, &e) {
			return ExitCodeResolution
		}
	}
	{
		var e *ErrInvalidArgument
		if errors.As(err, &e) {
			return ExitCodeInvalidArgument
		}
	}
	return ExitCodeUnknown
}
