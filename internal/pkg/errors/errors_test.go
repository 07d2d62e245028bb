package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_CopiesLeaveSentinelUntouched(t *testing.T) {
	detailed := ErrMissingInput.WithDetails(map[string]interface{}{"site_id": "a"})
	renamed := ErrUnknownForm.WithMessage("Unknown building form: hotel")

	assert.Empty(t, ErrMissingInput.Details)
	assert.Equal(t, "Unknown building form", ErrUnknownForm.Message)
	assert.Equal(t, "a", detailed.Details["site_id"])
	assert.Equal(t, http.StatusNotFound, renamed.StatusCode)

	wrapped := fmt.Errorf("lookup: %w", detailed)
	assert.True(t, stderrors.Is(wrapped, ErrMissingInput))
	assert.False(t, stderrors.Is(wrapped, ErrUnknownForm))
	assert.Equal(t, "MISSING_INPUT: Site is missing a required column", detailed.Error())
}
