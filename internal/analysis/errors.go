package analysis

import "errors"

var (
	// ErrExtraction is the only error Analyze returns: the document could not be read.
	ErrExtraction        = errors.New("error extracting text from document")
	ErrUnsupportedFormat = errors.New("unsupported file type")

	ErrEmptyDocument = errors.New("no text could be extracted from the document")
	ErrBackend       = errors.New("generative backend call failed")
	ErrNoJSONFound   = errors.New("no valid JSON found in model response")
	ErrMalformedJSON = errors.New("malformed JSON in model response")
)
