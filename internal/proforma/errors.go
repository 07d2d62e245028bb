package proforma

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownForm is returned when a lookup names a form the parameter set does not define
	ErrUnknownForm = errors.New("unknown form")

	// ErrUnknownParkingConfig is returned for parking configurations outside surface/deck/underground
	ErrUnknownParkingConfig = errors.New("unknown parking configuration")

	// ErrDuplicateSite is returned when two sites in one lookup share an ID
	ErrDuplicateSite = errors.New("duplicate site id")
)

// ConfigurationError reports an out-of-range or malformed parameter set field
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// MissingInputError reports a site column a lookup needs but the caller did not supply
type MissingInputError struct {
	SiteID string
	Field  string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input: site %q has no %s", e.SiteID, e.Field)
}

// HookContractError reports a caller hook that failed or broke the shape contract
type HookContractError struct {
	Hook   string
	Reason string
	Err    error
}

func (e *HookContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hook %s: %s: %v", e.Hook, e.Reason, e.Err)
	}
	return fmt.Sprintf("hook %s: %s", e.Hook, e.Reason)
}

func (e *HookContractError) Unwrap() error {
	return e.Err
}

func configErrorf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
