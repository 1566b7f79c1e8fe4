package services

import "errors"

// Sentinel errors for the analysis pipeline. Handlers match these with
// errors.Is to pick the HTTP status code.
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMediaTooLarge        = errors.New("media too large")
	ErrMediaUnreadable      = errors.New("failed to read media")
	ErrMissingAPIKey        = errors.New("missing Gemini API key")
	ErrAnalysisFailed       = errors.New("analysis failed")
	ErrAnalysisInFlight     = errors.New("an analysis is already in progress")
)
