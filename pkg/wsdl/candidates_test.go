package wsdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceCandidatesStripsParameters(t *testing.T) {
	candidates := ReduceCandidates([]string{"http://h/svc?x=1"}, NewFoundSet())
	assert.Equal(t, []string{"http://h/svc"}, candidates.Items())
}

func TestReduceCandidatesCollapsesDifferingQueries(t *testing.T) {
	candidates := ReduceCandidates([]string{
		"http://h/a?x=1",
		"http://h/a?y=2",
		"http://h/a?x=1&y=2#top",
	}, NewFoundSet())
	assert.Equal(t, []string{"http://h/a"}, candidates.Items())
}

func TestReduceCandidatesKeepsUnparameterizedVerbatim(t *testing.T) {
	candidates := ReduceCandidates([]string{
		"http://h/b",
		"http://h/b",
		"http://h/c?flag",
		"http://h/B",
	}, NewFoundSet())
	assert.Equal(t, []string{"http://h/b", "http://h/c?flag", "http://h/B"}, candidates.Items())
}

func TestReduceCandidatesSkipsWSDLURLs(t *testing.T) {
	candidates := ReduceCandidates([]string{
		"http://h/svc?wsdl",
		"http://h/defs/service.WSDL",
		"http://h/other",
	}, NewFoundSet())
	assert.Equal(t, []string{"http://h/other"}, candidates.Items())
}

func TestReduceCandidatesExcludesFound(t *testing.T) {
	found := NewFoundSet()
	found.Add("http://h/known")
	candidates := ReduceCandidates([]string{"http://h/known", "http://h/new"}, found)
	assert.False(t, candidates.Contains("http://h/known"))
	assert.True(t, candidates.Contains("http://h/new"))
}

func TestReduceCandidatesSkipsUnparseable(t *testing.T) {
	candidates := ReduceCandidates([]string{"http://[::1:bad?x=1", "not a url?x=1"}, nil)
	assert.Equal(t, 0, candidates.Len())
}

func TestCandidateSetAddReturnsCandidate(t *testing.T) {
	candidates := NewCandidateSet()
	assert.Equal(t, "http://h/a", candidates.Add("http://h/a?x=1", nil))
	assert.Equal(t, "", candidates.Add("http://h/a?y=1", nil))
	assert.Equal(t, "", candidates.Add("http://h/a?wsdl", nil))
}

func TestReduceCandidatesNeverEmitsDuplicateTriples(t *testing.T) {
	inputs := []string{}
	for _, q := range []string{"a=1", "b=2", "c=3", "a=1&b=2", "z=0#f"} {
		inputs = append(inputs, "https://example.com:8443/api/endpoint?"+q)
	}
	candidates := ReduceCandidates(inputs, NewFoundSet())
	assert.Equal(t, []string{"https://example.com:8443/api/endpoint"}, candidates.Items())
}
