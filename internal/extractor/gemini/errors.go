package gemini

import "errors"

var (
	// ErrNoCandidates is returned when the model response had no candidates.
	ErrNoCandidates = errors.New("no candidates returned from the model")
	// ErrEmptyContent is returned when the first candidate had no content parts.
	ErrEmptyContent = errors.New("empty content returned from the model")
	// ErrUnexpectedResponse is returned when the first content part is not text.
	ErrUnexpectedResponse = errors.New("unexpected response format from the model")
)
