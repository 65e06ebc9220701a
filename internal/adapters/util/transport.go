package util

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"
)

// LoggingTransport is an http.RoundTripper that logs request and response
// bodies when the log level is debug.
type LoggingTransport struct {
	Base     http.RoundTripper
	LogLevel string
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if strings.ToLower(t.LogLevel) != "debug" {
		return base.RoundTrip(req)
	}

	// Request logging
	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}

	log.Printf("DEBUG OUTBOUND REQUEST: [%s] %s", req.Method, req.URL.String())
	if len(reqBody) > 0 {
		// The login body carries credentials
		if strings.HasSuffix(req.URL.Path, "/account/login") {
			log.Printf("DEBUG OUTBOUND REQUEST BODY: <credentials redacted, length=%d>", len(reqBody))
		} else {
			log.Printf("DEBUG OUTBOUND REQUEST BODY: %s", string(reqBody))
		}
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	// Response logging
	log.Printf("DEBUG OUTBOUND RESPONSE: %d %s", resp.StatusCode, req.URL.String())

	respBody, _ := io.ReadAll(resp.Body)
	resp.Body = io.NopCloser(bytes.NewBuffer(respBody))

	if len(respBody) > 0 {
		log.Printf("DEBUG OUTBOUND RESPONSE BODY: %s", string(respBody))
	}

	return resp, nil
}
