// internal/client/debug.go
package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Headers carrying secrets; their values are never logged.
var redactedHeaders = map[string]bool{
	"Authorization":        true,
	"X-Amz-Security-Token": true,
}

// requestLogger wraps the session's HTTP client and logs every request
// sent to the service endpoint along with the reply status.
type requestLogger struct {
	next   aws.HTTPClient
	logger *slog.Logger
}

func (l *requestLogger) Do(r *http.Request) (*http.Response, error) {
	start := time.Now()
	l.logger.Debug("sending request",
		"method", r.Method,
		"url", r.URL.String(),
		"host", r.Host,
		"content_length", r.ContentLength,
		"headers", headerGroup(r.Header),
	)

	resp, err := l.next.Do(r)
	if err != nil {
		l.logger.Debug("request failed", "url", r.URL.String(), "error", err, "elapsed", time.Since(start))
		return nil, err
	}
	l.logger.Debug("received response",
		"url", r.URL.String(),
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)
	return resp, nil
}

func headerGroup(h http.Header) slog.Value {
	attrs := make([]slog.Attr, 0, len(h))
	for name, values := range h {
		if redactedHeaders[http.CanonicalHeaderKey(name)] {
			attrs = append(attrs, slog.String(name, "REDACTED"))
			continue
		}
		for _, v := range values {
			attrs = append(attrs, slog.String(name, v))
		}
	}
	return slog.GroupValue(attrs...)
}
