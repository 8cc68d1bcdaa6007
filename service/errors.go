package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/olivere/elastic/v7"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnsupportedSuggester is returned when a suggest option carries a
	// variant the compiler does not recognize.
	ErrUnsupportedSuggester = errors.New("unsupported suggester variant")

	// ErrMissingSource is returned when an index operation has no source
	// document.
	ErrMissingSource = errors.New("missing source document")
)

// EngineError is the normalized failure shape delivered for engine-domain
// errors. Message carries the engine's detailed reason; the structured cause
// is discarded.
type EngineError struct {
	Status  int
	Message string
}

func (e *EngineError) Error() string {
	return e.Message
}

// normalizeFailure is the only path by which a failure reaches a caller. It
// logs the original error at error severity, then converts a recognized
// engine-domain error into an EngineError with the engine's detailed message;
// any other error passes through unchanged.
func (s *Service) normalizeFailure(op string, err error) error {
	fields := logrus.Fields{
		"op":         op,
		"request_id": uuid.NewString(),
	}

	var engineErr *elastic.Error
	if errors.As(err, &engineErr) {
		fields["status"] = engineErr.Status
		s.log.WithFields(fields).WithError(err).Error("engine operation failed")
		return &EngineError{
			Status:  engineErr.Status,
			Message: detailedMessage(engineErr),
		}
	}

	s.log.WithFields(fields).WithError(err).Error("engine operation failed")
	return err
}

// detailedMessage extracts the engine's most specific failure reason.
func detailedMessage(err *elastic.Error) string {
	if err.Details != nil {
		if err.Details.Reason != "" {
			return err.Details.Reason
		}
		if err.Details.Type != "" {
			return err.Details.Type
		}
	}
	return err.Error()
}
