// Package httptransport carries the HTTP middleware applied to every
// outgoing platform request.
package httptransport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HeaderRoundTripper injects the bearer token and a per-request id into
// every outgoing request and logs the round trip at debug level.
type HeaderRoundTripper struct {
	Token  string
	Logger *logrus.Logger
	Next   http.RoundTripper
}

func (rt HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	next := rt.Next
	if next == nil {
		next = http.DefaultTransport
	}

	clone := req.Clone(req.Context())
	if rt.Token != "" {
		clone.Header.Set("Authorization", "Bearer "+rt.Token)
	}
	requestID := uuid.NewString()
	clone.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := next.RoundTrip(clone)
	if rt.Logger != nil {
		entry := rt.Logger.WithFields(logrus.Fields{
			"requestId": requestID,
			"method":    req.Method,
			"url":       req.URL.String(),
			"elapsed":   time.Since(start),
		})
		if err != nil {
			entry.WithError(err).Debug("platform request failed")
		} else {
			entry.WithField("status", resp.StatusCode).Debug("platform request")
		}
	}
	return resp, err
}
