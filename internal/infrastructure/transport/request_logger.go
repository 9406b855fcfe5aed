// Package transport holds the http.RoundTripper chain used by the API
// clients: request logging and client-side rate limiting.
package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"petclinic-client/pkg/logger"
	"petclinic-client/pkg/utils"
)

// RequestIDHeader is sent on every outbound call so the API logs can be
// correlated with ours.
const RequestIDHeader = "X-Request-ID"

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// RequestLogger logs every outbound request with timing and status.
func RequestLogger(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()[:8]
		}

		reqLogger := logger.WithRequestID(requestID)
		if userID := bearerUserID(r); userID != "" {
			reqLogger = logger.WithUserID(reqLogger, userID)
		}

		// RoundTrippers must not modify the caller's request.
		r = r.Clone(logger.NewContext(r.Context(), &reqLogger))
		r.Header.Set(RequestIDHeader, requestID)

		resp, err := next.RoundTrip(r)

		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		logger.APICall(&reqLogger, r.Method, r.URL.Path, status, time.Since(start), err)
		return resp, err
	})
}

func bearerUserID(r *http.Request) string {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || token == r.Header.Get("Authorization") {
		return ""
	}
	claims, err := utils.ExtractClaims(token)
	if err != nil || claims == nil {
		return ""
	}
	return claims.UserID
}
