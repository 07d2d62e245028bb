package usecase

import (
	"errors"

	apperrors "github.com/proforma-service/internal/pkg/errors"
	"github.com/proforma-service/internal/proforma"
)

// translateEngineError maps engine errors onto transport errors. Anything
// unrecognised is returned unchanged and rendered as a 500.
func translateEngineError(err error) error {
	if err == nil {
		return nil
	}

	var missing *proforma.MissingInputError
	var cfgErr *proforma.ConfigurationError
	var hookErr *proforma.HookContractError

	switch {
	case errors.Is(err, proforma.ErrUnknownForm):
		return apperrors.ErrUnknownForm.WithDetails(map[string]interface{}{"reason": err.Error()})
	case errors.Is(err, proforma.ErrUnknownParkingConfig):
		return apperrors.ErrUnknownParkingConfig.WithDetails(map[string]interface{}{"reason": err.Error()})
	case errors.Is(err, proforma.ErrDuplicateSite):
		return apperrors.ErrDuplicateSite.WithDetails(map[string]interface{}{"reason": err.Error()})
	case errors.As(err, &missing):
		return apperrors.ErrMissingInput.WithDetails(map[string]interface{}{
			"site_id": missing.SiteID,
			"field":   missing.Field,
		})
	case errors.As(err, &cfgErr):
		return apperrors.ErrInvalidConfiguration.WithDetails(map[string]interface{}{
			"field":  cfgErr.Field,
			"reason": cfgErr.Reason,
		})
	case errors.As(err, &hookErr):
		return apperrors.ErrHookContract.WithDetails(map[string]interface{}{"hook": hookErr.Hook})
	}
	return err
}
