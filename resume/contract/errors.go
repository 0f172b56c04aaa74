package contract

import "errors"

// ErrNoContent marks input that carries no analyzable text.
var ErrNoContent = errors.New("no content")

// NoContentError is returned when the raw text is empty after trimming.
type NoContentError struct {
	Source string
}

func (e NoContentError) Error() string {
	if e.Source == "" {
		return "no text content found"
	}
	return "no text content found in " + e.Source
}

func (e NoContentError) Is(target error) bool { return target == ErrNoContent }

// InvalidInputError is returned when caller-supplied input is malformed or incomplete.
type InvalidInputError struct {
	Field  string
	Reason string
	Err    error
}

func (e InvalidInputError) Error() string {
	msg := e.Reason
	if msg == "" {
		msg = "invalid input"
	}
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e InvalidInputError) Unwrap() error { return e.Err }

// ExtractionError wraps a failure of the PDF/DOCX text collaborator.
type ExtractionError struct {
	Err error
}

func (e ExtractionError) Error() string {
	if e.Err == nil {
		return "text extraction failed"
	}
	return "text extraction failed: " + e.Err.Error()
}

func (e ExtractionError) Unwrap() error { return e.Err }

// IsNoContent reports whether err is, or wraps, a NoContentError.
func IsNoContent(err error) bool {
	return errors.Is(err, ErrNoContent)
}

// IsInvalidInput reports whether err is, or wraps, an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target InvalidInputError
	return errors.As(err, &target)
}

// IsExtraction reports whether err is, or wraps, an ExtractionError.
func IsExtraction(err error) bool {
	var target ExtractionError
	return errors.As(err, &target)
}
