package speech

import "errors"

// Pipeline failures. Their messages are returned to clients verbatim.
var (
	ErrInvalidInput         = errors.New("No prompt provided")
	ErrMissingConfiguration = errors.New("Missing required API keys or voice ID")
	ErrEmptyGeneration      = errors.New("AI failed to generate speech text")
	ErrEmptySpeech          = errors.New("Speech text empty after processing")
)
