package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/proforma-service/internal/pkg/errors"
)

// invalidRequest wraps body and validation failures so they render as 400s
func invalidRequest(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]interface{}, len(verrs))
		for _, fe := range verrs {
			fields[fe.Namespace()] = fe.Tag()
		}
		return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{"fields": fields})
	}
	return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()})
}
