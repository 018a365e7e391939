// Package externalapi holds helpers shared by the market data API clients.
package externalapi

import (
	"fmt"
	"io"
	"log/slog"
)

// StatusError is returned when an upstream API answers with a non-success HTTP status.
type StatusError struct {
	Source string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: http %d", e.Source, e.Code)
}

// CloseBody closes a response body and logs a failure instead of dropping it.
func CloseBody(source string, body io.Closer) {
	if err := body.Close(); err != nil {
		slog.Warn("failed to close response body", "source", source, "error", err)
	}
}
