package http_utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/timeout") {
			time.Sleep(500 * time.Millisecond)
		}
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`<wsdl:definitions/>`))
	}))
	defer server.Close()

	t.Run("captures request and response", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/svc?wsdl", nil)
		require.NoError(t, err)

		result := ExecuteRequest(req, RequestExecutionOptions{Timeout: 5 * time.Second})
		require.NoError(t, result.Err)
		assert.Equal(t, http.StatusOK, result.Response.StatusCode)
		assert.Equal(t, `<wsdl:definitions/>`, string(result.ResponseData.Body))
		assert.Contains(t, string(result.ResponseData.Raw), "HTTP/1.1 200 OK")
		assert.Contains(t, string(result.ResponseData.Raw), `<wsdl:definitions/>`)
		assert.Contains(t, string(result.RequestDump), "GET /svc?wsdl HTTP/1.1")
		assert.False(t, result.ResponseData.Truncated)
	})

	t.Run("times out", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/timeout", nil)
		require.NoError(t, err)

		result := ExecuteRequest(req, RequestExecutionOptions{Timeout: 50 * time.Millisecond})
		assert.Error(t, result.Err)
		assert.True(t, result.TimedOut)
		assert.Nil(t, result.Response)
	})

	t.Run("truncates large bodies", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/svc", nil)
		require.NoError(t, err)

		result := ExecuteRequest(req, RequestExecutionOptions{MaxBodySize: 5})
		require.NoError(t, result.Err)
		assert.Equal(t, "<wsdl", string(result.ResponseData.Body))
		assert.True(t, result.ResponseData.Truncated)
	})

	t.Run("connection refused", func(t *testing.T) {
		closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		closedURL := closed.URL
		closed.Close()

		req, err := http.NewRequest(http.MethodGet, closedURL, nil)
		require.NoError(t, err)
		result := ExecuteRequest(req, RequestExecutionOptions{Timeout: time.Second})
		assert.Error(t, result.Err)
		assert.False(t, result.TimedOut)
	})
}

func TestIsTimeoutError(t *testing.T) {
	assert.False(t, IsTimeoutError(nil))
	assert.True(t, IsTimeoutError(context.DeadlineExceeded))
	assert.True(t, IsTimeoutError(&timeoutErr{}))
}

type timeoutErr struct{}

func (e *timeoutErr) Error() string   { return "i/o" }
func (e *timeoutErr) Timeout() bool   { return true }
func (e *timeoutErr) Temporary() bool { return true }

func TestBuildHistory(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://h/svc?wsdl", nil)
	req.Header.Set("Cookie", "session=1")
	response := &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/xml"}},
		Request:    req,
	}
	history := BuildHistory(response, FullResponseData{Body: []byte("<soap:"), BodySize: 6, Truncated: true}, []byte("GET /svc?wsdl HTTP/1.1\r\n\r\n"), HistoryCreationOptions{
		Source:      "WSDLWizard",
		WorkspaceID: 3,
	})
	assert.Equal(t, "http://h/svc?wsdl", history.URL)
	assert.Equal(t, "text/xml", history.ResponseContentType)
	assert.Equal(t, uint(3), *history.WorkspaceID)
	assert.Equal(t, "Response body was truncated", history.Note)
	assert.Equal(t, "session=1", history.GetRequestHeader("cookie"))
}
