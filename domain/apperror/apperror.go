// Package apperror holds the error taxonomy of the playlist calculator and its mapping to HTTP status codes.
package apperror

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kinds. Lower layers mark their failures with ErrPagination or ErrFetch; the
// orchestrator turns anything unclassified into ErrQuotaExceeded or ErrProcessing.
var (
	ErrConfig        = errors.New("config error")
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrQuotaExceeded = errors.New("quota exceeded")
	ErrPagination    = errors.New("pagination error")
	ErrFetch         = errors.New("fetch error")
	ErrProcessing    = errors.New("processing error")
)

// Messages shown to the caller
const (
	MsgAPIKeyNotConfigured = "YouTube API key is not configured. Please add your API key to the .env file."
	MsgURLRequired         = "Playlist URL is required"
	MsgInvalidPlaylistURL  = "Invalid YouTube playlist URL"
	MsgPlaylistNotFound    = "Playlist not found"
	MsgNoVideos            = "No videos found in playlist or playlist is private"
	MsgQuotaExceeded       = "YouTube API quota exceeded. Please try again later."
	MsgProcessing          = "Failed to process playlist. Please check the URL and try again."
)

// Error is a classified failure. Message is safe to return to the caller; the
// cause is kept for logs only.
type Error struct {
	Kind    error
	Message string
	cause   error
}

// New creates a classified error without an underlying cause
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error around cause
func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches the error's kind so errors.Is(err, ErrNotFound) works on classified errors.
func (e *Error) Is(target error) bool { return e.Kind == target }

// Classify returns err as a classified error. Errors already classified are
// returned unchanged. Anything else whose message mentions "quota" becomes
// ErrQuotaExceeded and the rest ErrProcessing.
//
// The quota check is a plain substring match on the upstream message and will
// miss a rewording of that message.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if strings.Contains(strings.ToLower(err.Error()), "quota") {
		return Wrap(ErrQuotaExceeded, MsgQuotaExceeded, err)
	}
	return Wrap(ErrProcessing, MsgProcessing, err)
}

// HTTPStatus maps a classified error to the status code of the response
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// KindName is the short label used in logs and stream events
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrConfig):
		return "ConfigError"
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrNotFound):
		return "NotFoundError"
	case errors.Is(err, ErrQuotaExceeded):
		return "QuotaExceededError"
	case errors.Is(err, ErrProcessing):
		return "ProcessingError"
	case errors.Is(err, ErrPagination):
		return "PaginationError"
	case errors.Is(err, ErrFetch):
		return "FetchError"
	default:
		return "ProcessingError"
	}
}
