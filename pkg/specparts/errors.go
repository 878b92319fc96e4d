package specparts

import (
	"fmt"
	"net/http"
)

const (
	msgJSONParse          = "JSON parse failed"
	msgJSONParseAfterGzip = "JSON parse failed after gunzip"
	msgDecompress         = "Decompress failed"
	msgMissingPlate       = "Falta patente"
)

// AuthError is returned when the token endpoint answers with a non-2xx status.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// NetworkError wraps a transport failure reaching the upstream.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError reports a body that could not be decompressed or parsed as JSON.
// Msg is safe to show to clients.
type DecodeError struct {
	Msg string
	Err error
}

func (e *DecodeError) Error() string {
	return e.Msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
