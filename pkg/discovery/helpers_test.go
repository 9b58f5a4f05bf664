package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pyneda/wsdlwizard/db"
	"github.com/stretchr/testify/require"
)

const wsdlBody = `<?xml version="1.0"?><wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"></wsdl:definitions>`

type fakeCollaborator struct {
	corpus      []ObservedTransaction
	corpusErr   error
	session     http.Header
	sessionErr  error
	corpusCalls atomic.Int32

	mu       sync.Mutex
	recorded []ProbeResponse
}

func (f *fakeCollaborator) Corpus(ctx context.Context, target Target) ([]ObservedTransaction, error) {
	f.corpusCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.corpus, f.corpusErr
}

func (f *fakeCollaborator) RecordTransaction(ctx context.Context, response ProbeResponse) (*db.History, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, response)
	return response.History, nil
}

func (f *fakeCollaborator) SessionContext(ctx context.Context, target Target) (http.Header, error) {
	return f.session, f.sessionErr
}

func (f *fakeCollaborator) recordedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	urls := make([]string, 0, len(f.recorded))
	for _, r := range f.recorded {
		urls = append(urls, r.URL)
	}
	return urls
}

func observed(url string, status int) ObservedTransaction {
	return ObservedTransaction{URL: url, Method: "GET", StatusCode: status, HasResponse: true}
}

// newWsdlServer serves a wsdl document for "?wsdl" requests on the given paths and 404 otherwise.
// It counts the requests received per path.
func newWsdlServer(t *testing.T, paths ...string) (*httptest.Server, *sync.Map) {
	t.Helper()
	hits := &sync.Map{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter, _ := hits.LoadOrStore(r.URL.Path, new(atomic.Int32))
		counter.(*atomic.Int32).Add(1)
		if strings.ToLower(r.URL.RawQuery) == "wsdl" {
			for _, path := range paths {
				if r.URL.Path == path {
					w.Header().Set("Content-Type", "text/xml")
					w.Write([]byte(wsdlBody))
					return
				}
			}
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	t.Cleanup(server.Close)
	return server, hits
}

func hitCount(hits *sync.Map, path string) int32 {
	counter, ok := hits.Load(path)
	if !ok {
		return 0
	}
	return counter.(*atomic.Int32).Load()
}

func serverTarget(t *testing.T, server *httptest.Server) Target {
	t.Helper()
	target, err := TargetFromURL(server.URL)
	require.NoError(t, err)
	return target
}
