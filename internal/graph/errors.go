package graph

import (
	"github.com/rs/zerolog/log"

	"github.com/labtrack/lims/internal/pkg/limserr"
)

// apiError presents a LIMSError to GraphQL clients: the bare message, with the
// code and extras under extensions.
type apiError struct {
	err *limserr.LIMSError
}

func (e apiError) Error() string {
	return e.err.Message
}

func (e apiError) Extensions() map[string]interface{} {
	return e.err.Extensions()
}

func (e apiError) Unwrap() error {
	return e.err
}

// clientError hides errors that are not API errors behind INTERNAL_ERROR.
func clientError(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := limserr.From(err); ok {
		return apiError{err: e}
	}
	log.Error().
		Str("evt.name", "graph.resolve.error").
		Stack().
		Err(err).
		Msg("unexpected error while resolving field")
	return apiError{err: limserr.ErrInternalError}
}
