package http_utils

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultMaxBodySize bounds how much of a response body is kept in memory
const DefaultMaxBodySize int64 = 2 * 1024 * 1024

// FullResponseData holds the captured response body and raw dump
type FullResponseData struct {
	Body      []byte
	BodySize  int
	Raw       []byte
	RawSize   int
	Truncated bool
}

// RequestExecutionResult contains the complete result of an HTTP request execution
type RequestExecutionResult struct {
	Request      *http.Request
	RequestDump  []byte
	Response     *http.Response
	ResponseData FullResponseData
	Duration     time.Duration
	Err          error
	TimedOut     bool
}

// RequestExecutionOptions contains options for executing HTTP requests
type RequestExecutionOptions struct {
	Client      *http.Client
	Timeout     time.Duration
	MaxBodySize int64
}

// ExecuteRequest executes an HTTP request, capturing the raw request and a bounded copy of the response.
// The response body is fully consumed and closed before returning.
func ExecuteRequest(req *http.Request, options RequestExecutionOptions) RequestExecutionResult {
	startTime := time.Now()

	client := options.Client
	if client == nil {
		client = CreateHttpClient()
	}
	maxBodySize := options.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	if options.Timeout > 0 {
		ctx, cancel := context.WithTimeout(req.Context(), options.Timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	result := RequestExecutionResult{Request: req}

	requestDump, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		log.Debug().Err(err).Str("url", req.URL.String()).Msg("Could not dump outgoing request")
	}
	result.RequestDump = requestDump

	response, err := client.Do(req)
	if err != nil {
		result.Duration = time.Since(startTime)
		result.Err = err
		result.TimedOut = IsTimeoutError(err)
		return result
	}
	defer response.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize+1))
	result.Duration = time.Since(startTime)
	if err != nil {
		result.Err = err
		result.TimedOut = IsTimeoutError(err)
		return result
	}
	truncated := int64(len(bodyBytes)) > maxBodySize
	if truncated {
		bodyBytes = bodyBytes[:maxBodySize]
	}

	headerDump, err := httputil.DumpResponse(response, false)
	if err != nil {
		result.Err = err
		return result
	}
	raw := make([]byte, 0, len(headerDump)+len(bodyBytes))
	raw = append(raw, headerDump...)
	raw = append(raw, bodyBytes...)

	response.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	result.Response = response
	result.ResponseData = FullResponseData{
		Body:      bodyBytes,
		BodySize:  len(bodyBytes),
		Raw:       raw,
		RawSize:   len(raw),
		Truncated: truncated,
	}
	return result
}

// IsTimeoutError checks if an error is due to timeout
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errorStr := err.Error()
	return strings.Contains(errorStr, "timeout") ||
		strings.Contains(errorStr, "deadline exceeded") ||
		strings.Contains(errorStr, "operation timed out")
}
