package analyses

import (
	"context"
	"errors"

	"resume-ats/resume/contract"
)

var (
	ErrNotFound              = errors.New("analysis not found")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrJobQueueNotConfigured = errors.New("job queue not configured")
)

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeNoContent  = "NO_CONTENT"
	ErrorCodeExtraction = "EXTRACTION_FAILED"
	ErrorCodeTimeout    = "TIMEOUT"
	ErrorCodeStorage    = "STORAGE_ERROR"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)

// storageError marks failures reading or writing persisted state; they are worth retrying.
type storageError struct {
	err error
}

func (e storageError) Error() string { return e.err.Error() }
func (e storageError) Unwrap() error { return e.err }

// classifyFailure maps a processing error to a stored error code and whether a retry may help.
func classifyFailure(err error) (string, bool) {
	var storage storageError
	switch {
	case err == nil:
		return ErrorCodeInternal, false
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeTimeout, true
	case contract.IsNoContent(err):
		return ErrorCodeNoContent, false
	case contract.IsExtraction(err):
		return ErrorCodeExtraction, false
	case contract.IsInvalidInput(err), errors.As(err, new(contract.MissingFieldsError)):
		return ErrorCodeValidation, false
	case errors.Is(err, ErrDocumentNotFound):
		return ErrorCodeStorage, false
	case errors.As(err, &storage):
		return ErrorCodeStorage, true
	default:
		return ErrorCodeInternal, false
	}
}
