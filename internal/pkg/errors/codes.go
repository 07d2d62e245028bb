package errors

import "net/http"

var (
	ErrInvalidConfiguration = New(
		"INVALID_CONFIGURATION",
		"Invalid pro forma parameter set",
		http.StatusUnprocessableEntity,
	)

	ErrMissingInput = New(
		"MISSING_INPUT",
		"Site is missing a required column",
		http.StatusUnprocessableEntity,
	)

	ErrUnknownForm = New(
		"UNKNOWN_FORM",
		"Unknown building form",
		http.StatusNotFound,
	)

	ErrUnknownParkingConfig = New(
		"UNKNOWN_PARKING_CONFIG",
		"Unknown parking configuration",
		http.StatusNotFound,
	)

	ErrDuplicateSite = New(
		"DUPLICATE_SITE",
		"Duplicate site id in request",
		http.StatusBadRequest,
	)

	ErrHookContract = New(
		"HOOK_CONTRACT",
		"Evaluation hook broke its contract",
		http.StatusInternalServerError,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrStreamError = New(
		"STREAM_ERROR",
		"Failed to publish to stream",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
