package discovery

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pyneda/wsdlwizard/db"
	"github.com/pyneda/wsdlwizard/pkg/http_utils"
	"github.com/spf13/viper"
)

type StrategyKind string

const (
	StrategyDirect  StrategyKind = "direct"
	StrategySession StrategyKind = "session"
)

// ProbeResponse is what a strategy captured for one probe. History is the
// unsaved transaction, recorded only when the probe is confirmed.
type ProbeResponse struct {
	URL        string
	StatusCode int
	Body       []byte
	History    *db.History
}

// ProbeStrategy issues the GET request of a probe
type ProbeStrategy interface {
	Name() StrategyKind
	Get(ctx context.Context, url string) (ProbeResponse, error)
}

// DirectStrategy probes with a plain client, carrying no session state
type DirectStrategy struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
	headers     http.Header
}

func NewDirectStrategy(client *http.Client, timeout time.Duration, maxBodySize int64) *DirectStrategy {
	if client == nil {
		client = http_utils.CreateHttpClient()
	}
	return &DirectStrategy{
		client:      client,
		timeout:     timeout,
		maxBodySize: maxBodySize,
	}
}

func (s *DirectStrategy) Name() StrategyKind {
	return StrategyDirect
}

func (s *DirectStrategy) Get(ctx context.Context, url string) (ProbeResponse, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ProbeResponse{URL: url}, &ProbeNetworkError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if userAgent := viper.GetString("navigation.user_agent"); userAgent != "" {
		request.Header.Set("User-Agent", userAgent)
	}
	for name, values := range s.headers {
		request.Header.Del(name)
		for _, value := range values {
			request.Header.Add(name, value)
		}
	}

	result := http_utils.ExecuteRequest(request, http_utils.RequestExecutionOptions{
		Client:      s.client,
		Timeout:     s.timeout,
		MaxBodySize: s.maxBodySize,
	})
	if result.Err != nil {
		return ProbeResponse{URL: url}, &ProbeNetworkError{URL: url, Err: result.Err, TimedOut: result.TimedOut}
	}

	history := http_utils.BuildHistory(result.Response, result.ResponseData, result.RequestDump, http_utils.HistoryCreationOptions{
		Source: db.SourceWSDLWizard,
	})
	if finalURL := history.URL; finalURL != request.URL.String() {
		history.Note = joinNotes(history.Note, fmt.Sprintf("Redirected to %s", finalURL))
	}
	history.URL = url
	return ProbeResponse{
		URL:        url,
		StatusCode: result.Response.StatusCode,
		Body:       result.ResponseData.Body,
		History:    history,
	}, nil
}

// SessionStrategy replays the session context known for the target on every probe
type SessionStrategy struct {
	direct DirectStrategy
}

// NewSessionStrategy asks the collaborator for the session context of target.
// It fails with ErrProbeTransportUnavailable when none is known.
func NewSessionStrategy(ctx context.Context, collaborator Collaborator, target Target, client *http.Client, timeout time.Duration, maxBodySize int64) (*SessionStrategy, error) {
	headers, err := collaborator.SessionContext(ctx, target)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: empty session context for %s", ErrProbeTransportUnavailable, target.Origin())
	}
	direct := NewDirectStrategy(client, timeout, maxBodySize)
	direct.headers = headers.Clone()
	return &SessionStrategy{direct: *direct}, nil
}

func (s *SessionStrategy) Name() StrategyKind {
	return StrategySession
}

func (s *SessionStrategy) Get(ctx context.Context, url string) (ProbeResponse, error) {
	return s.direct.Get(ctx, url)
}

func newStrategy(ctx context.Context, options Options, collaborator Collaborator, target Target) (ProbeStrategy, error) {
	switch options.Strategy {
	case StrategySession:
		return NewSessionStrategy(ctx, collaborator, target, options.Client, options.Timeout, options.MaxBodySize)
	case StrategyDirect, "":
		return NewDirectStrategy(options.Client, options.Timeout, options.MaxBodySize), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrProbeTransportUnavailable, options.Strategy)
	}
}

func joinNotes(notes ...string) string {
	kept := make([]string, 0, len(notes))
	for _, note := range notes {
		if note != "" {
			kept = append(kept, note)
		}
	}
	return strings.Join(kept, ". ")
}
