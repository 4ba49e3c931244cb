package esutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v7/esapi"
)

// ErrSessionClosed is returned when a page is requested from a scroll
// session that has already been closed. No request is sent.
var ErrSessionClosed = errors.New("scroll session is closed")

// ErrMissingScrollId is returned when a scroll-enabled response arrives
// without a continuation token.
var ErrMissingScrollId = errors.New("response is missing a scroll id")

// scrollContextMissing is the engine's error type for a scroll whose
// server-side context expired or was already cleared.
const scrollContextMissing = "search_context_missing_exception"

// EsError is a well-formed error response from Elasticsearch, carrying the
// engine's status and reason untouched.
type EsError struct {
	StatusCode int
	Type       string
	Reason     string
}

func (e *EsError) Error() string {
	return fmt.Sprintf("error response from elasticsearch: [%d] %s: %s", e.StatusCode, e.Type, e.Reason)
}

// IsScrollExpired reports whether err indicates the server-side scroll
// context is gone. Callers should close the session rather than retry:
// recreating the scroll silently would change result-set semantics.
func IsScrollExpired(err error) bool {
	var esError *EsError
	if !errors.As(err, &esError) {
		return false
	}

	return esError.Type == scrollContextMissing || esError.StatusCode == http.StatusNotFound
}

// errorFromResponse turns a non-2xx esapi response into an *EsError,
// preferring the structured error body when one is present.
func errorFromResponse(res *esapi.Response) error {
	esError := &EsError{
		StatusCode: res.StatusCode,
	}

	response := EsErrorResponse{}
	if err := DecodeResponse(res.Body, &response); err == nil && response.Error != nil {
		esError.Type = response.Error.Type
		esError.Reason = response.Error.Reason
	}

	return esError
}
