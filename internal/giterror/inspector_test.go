package giterror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-github/v63/github"
	rostererrors "github.com/sirseerhq/sirseer-roster/internal/errors"
)

func TestGitHubErrorInspector_IsNetworkError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "url error",
			err:  &url.Error{Op: "Get", URL: "http://example.invalid", Err: errors.New("boom")},
			want: true,
		},
		{
			name: "connection refused",
			err:  errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
			want: true,
		},
		{
			name: "no such host",
			err:  errors.New("lookup api.example.invalid: no such host"),
			want: true,
		},
		{
			name: "wrapped timeout",
			err:  fmt.Errorf("page 3: %w", errors.New("i/o timeout")),
			want: true,
		},
		{
			name: "not a network error",
			err:  errors.New("something went wrong"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsStatusError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "status error",
			err:  &StatusError{URL: "http://x/contributors?page=1", StatusCode: 500},
			want: true,
		},
		{
			name: "go-github error response",
			err:  &github.ErrorResponse{Response: &http.Response{StatusCode: 502, Request: &http.Request{Method: "GET", URL: &url.URL{}}}},
			want: true,
		},
		{
			name: "graphql non-200",
			err:  errors.New("non-200 OK status code: 502 Bad Gateway body: \"\""),
			want: true,
		},
		{
			name: "plain error",
			err:  errors.New("nope"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsStatusError(tt.err); got != tt.want {
				t.Errorf("IsStatusError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsParseError(t *testing.T) {
	inspector := NewInspector()

	var syntaxErr error
	if err := json.Unmarshal([]byte("{not json"), &struct{}{}); err != nil {
		syntaxErr = err
	}
	var typeErr error
	if err := json.Unmarshal([]byte(`{"a":1}`), &[]any{}); err != nil {
		typeErr = err
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "syntax error",
			err:  syntaxErr,
			want: true,
		},
		{
			name: "type error",
			err:  typeErr,
			want: true,
		},
		{
			name: "wrapped syntax error",
			err:  fmt.Errorf("decode page 1: %w", syntaxErr),
			want: true,
		},
		{
			name: "unexpected end",
			err:  errors.New("unexpected end of JSON input"),
			want: true,
		},
		{
			name: "not a parse error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsParseError(tt.err); got != tt.want {
				t.Errorf("IsParseError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsNotFoundError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "404 status error",
			err:  &StatusError{URL: "http://x", StatusCode: http.StatusNotFound},
			want: true,
		},
		{
			name: "graphql repository resolution",
			err:  errors.New("Could not resolve to a Repository with the name 'a/b'."),
			want: true,
		},
		{
			name: "500 status error",
			err:  &StatusError{URL: "http://x", StatusCode: http.StatusInternalServerError},
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	inspector := NewInspector()
	plain := errors.New("context canceled")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "status error is network",
			err:  &StatusError{URL: "http://x", StatusCode: 503},
			want: rostererrors.ErrNetworkFailure,
		},
		{
			name: "not found is network",
			err:  &StatusError{URL: "http://x", StatusCode: 404},
			want: rostererrors.ErrNetworkFailure,
		},
		{
			name: "dial error is network",
			err:  errors.New("dial tcp: connection refused"),
			want: rostererrors.ErrNetworkFailure,
		},
		{
			name: "decoder error is parse",
			err:  errors.New("invalid character '<' looking for beginning of value"),
			want: rostererrors.ErrParse,
		},
		{
			name: "existing sentinel kept",
			err:  fmt.Errorf("record 2: %w", rostererrors.ErrMissingField),
			want: rostererrors.ErrMissingField,
		},
		{
			name: "unknown error unchanged",
			err:  plain,
			want: plain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(inspector, tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("Classify() = %v, want wrapping %v", got, tt.want)
			}
		})
	}

	if Classify(inspector, nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}
