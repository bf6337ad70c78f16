package giterror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v63/github"
	rostererrors "github.com/sirseerhq/sirseer-roster/internal/errors"
)

// StatusError reports a response whose HTTP status was not 2xx.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Inspector provides methods for analyzing repository API errors.
type Inspector interface {
	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool

	// IsStatusError returns true if the server answered with a non-success status.
	IsStatusError(err error) bool

	// IsParseError returns true if the response body could not be decoded.
	IsParseError(err error) bool

	// IsNotFoundError returns true if the error represents a resource not found error.
	IsNotFoundError(err error) bool
}

// GitHubErrorInspector implements the Inspector interface for GitHub-style APIs.
type GitHubErrorInspector struct{}

// NewInspector creates a new GitHubErrorInspector.
func NewInspector() Inspector {
	return &GitHubErrorInspector{}
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *GitHubErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// IsStatusError checks for our own StatusError and go-github's ErrorResponse.
func (i *GitHubErrorInspector) IsStatusError(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return true
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		return true
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}
	// shurcooL/graphql reports non-200 responses as "non-200 OK status code: ..."
	return strings.Contains(err.Error(), "non-200 OK status code")
}

// IsParseError checks if the error came from decoding a response body.
func (i *GitHubErrorInspector) IsParseError(err error) bool {
	if err == nil {
		return false
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	// json.Decoder reports a truncated document as io.ErrUnexpectedEOF.
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "invalid character") ||
		strings.Contains(errStr, "unexpected eof") ||
		strings.Contains(errStr, "unexpected end of json input") ||
		strings.Contains(errStr, "cannot unmarshal")
}

// IsNotFoundError checks if the error is a not found error.
func (i *GitHubErrorInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found") ||
		strings.Contains(errStr, "could not resolve to a repository")
}

// Classify wraps err with the sentinel matching its kind. Errors that already
// carry a sentinel, and errors no inspector method recognizes, are returned
// unchanged.
func Classify(inspector Inspector, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, rostererrors.ErrNetworkFailure) ||
		errors.Is(err, rostererrors.ErrParse) ||
		errors.Is(err, rostererrors.ErrMissingField) {
		return err
	}

	// Decoder errors first: a truncated body can also mention a timeout.
	if inspector.IsParseError(err) {
		return fmt.Errorf("%w: %w", rostererrors.ErrParse, err)
	}
	if inspector.IsNotFoundError(err) {
		return fmt.Errorf("%w: resource not found: %w", rostererrors.ErrNetworkFailure, err)
	}
	if inspector.IsStatusError(err) || inspector.IsNetworkError(err) {
		return fmt.Errorf("%w: %w", rostererrors.ErrNetworkFailure, err)
	}
	return err
}
