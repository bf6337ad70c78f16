// Package giterror provides error inspection capabilities for repository API errors.
// It centralizes the logic for deciding whether a raw transport, HTTP or decoder
// error is a network failure or a malformed response, so the pagers never need
// string-based error checking of their own.
package giterror
