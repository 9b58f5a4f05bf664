package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedirectingWsdlServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/svc", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/real.wsdl", http.StatusFound)
	})
	mux.HandleFunc("/real.wsdl", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(wsdlBody))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestDirectStrategyRecordsRequestedURLAfterRedirect(t *testing.T) {
	server := newRedirectingWsdlServer(t)
	strategy := NewDirectStrategy(server.Client(), 5*time.Second, 1<<20)

	response, err := strategy.Get(context.Background(), server.URL+"/svc?wsdl")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, server.URL+"/svc?wsdl", response.URL)
	require.NotNil(t, response.History)
	assert.Equal(t, server.URL+"/svc?wsdl", response.History.URL)
	assert.Equal(t, "Redirected to "+server.URL+"/real.wsdl", response.History.Note)
}

func TestDirectStrategyWithoutRedirectKeepsNoteEmpty(t *testing.T) {
	server, _ := newWsdlServer(t, "/svc")
	strategy := NewDirectStrategy(server.Client(), 5*time.Second, 1<<20)

	response, err := strategy.Get(context.Background(), server.URL+"/svc?wsdl")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/svc?wsdl", response.History.URL)
	assert.Empty(t, response.History.Note)
}

func TestRunRecordsRedirectedConfirmationUnderCandidateURL(t *testing.T) {
	server := newRedirectingWsdlServer(t)
	collaborator := &fakeCollaborator{corpus: []ObservedTransaction{observed(server.URL+"/svc?x=1", 200)}}

	report, err := Run(context.Background(), collaborator, serverTarget(t, server), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{server.URL + "/svc?wsdl"}, report.Confirmed)

	require.Len(t, collaborator.recorded, 1)
	history := collaborator.recorded[0].History
	assert.Equal(t, server.URL+"/svc?wsdl", history.URL)
	assert.Contains(t, history.Note, "WSDL confirmed by keyword")
	assert.Contains(t, history.Note, "Redirected to "+server.URL+"/real.wsdl")
}

func TestJoinNotes(t *testing.T) {
	assert.Equal(t, "", joinNotes("", ""))
	assert.Equal(t, "a", joinNotes("", "a"))
	assert.Equal(t, "a. b", joinNotes("a", "", "b"))
}
