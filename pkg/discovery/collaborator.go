package discovery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pyneda/wsdlwizard/db"
	"github.com/pyneda/wsdlwizard/pkg/http_utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Collaborator gives a discovery run access to the corpus and session state of the embedding tool
type Collaborator interface {
	// Corpus returns every known transaction for the target origin
	Corpus(ctx context.Context, target Target) ([]ObservedTransaction, error)
	// RecordTransaction persists a confirmed probe so it becomes part of the corpus
	RecordTransaction(ctx context.Context, response ProbeResponse) (*db.History, error)
	// SessionContext returns the headers needed to replay the session known for the target
	SessionContext(ctx context.Context, target Target) (http.Header, error)
}

// HistoryCollaborator implements Collaborator on top of the stored history of a workspace
type HistoryCollaborator struct {
	conn         *db.DatabaseConnection
	workspaceID  uint
	extraHeaders map[string]string
}

// NewHistoryCollaborator creates a collaborator scoped to workspaceID, zero meaning every workspace.
// Extra session headers are read from navigation.headers.
func NewHistoryCollaborator(conn *db.DatabaseConnection, workspaceID uint) *HistoryCollaborator {
	return &HistoryCollaborator{
		conn:         conn,
		workspaceID:  workspaceID,
		extraHeaders: viper.GetStringMapString("navigation.headers"),
	}
}

func (c *HistoryCollaborator) history(ctx context.Context, target Target) ([]*db.History, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := c.conn.ListHistoryForOrigin(c.workspaceID, target.Origin())
	if err != nil {
		return nil, fmt.Errorf("listing history for %s: %w", target.Origin(), err)
	}
	return items, nil
}

func (c *HistoryCollaborator) Corpus(ctx context.Context, target Target) ([]ObservedTransaction, error) {
	items, err := c.history(ctx, target)
	if err != nil {
		return nil, err
	}
	corpus := make([]ObservedTransaction, 0, len(items))
	for _, item := range items {
		corpus = append(corpus, NewObservedTransaction(item))
	}
	log.Debug().Str("target", target.Origin()).Int("transactions", len(corpus)).Msg("Loaded corpus")
	return corpus, nil
}

func (c *HistoryCollaborator) RecordTransaction(ctx context.Context, response ProbeResponse) (*db.History, error) {
	if response.History == nil {
		return nil, errors.New("probe response has no captured transaction")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	record := response.History
	record.Source = db.SourceWSDLWizard
	if c.workspaceID > 0 {
		workspaceID := c.workspaceID
		record.WorkspaceID = &workspaceID
	}
	return c.conn.CreateHistory(record)
}

// SessionContext merges the cookies seen in the corpus, in chronological order,
// with the latest Authorization header and the configured extra headers.
func (c *HistoryCollaborator) SessionContext(ctx context.Context, target Target) (http.Header, error) {
	items, err := c.history(ctx, target)
	if err != nil {
		return nil, err
	}

	jar := http_utils.NewCookieJar()
	authorization := ""
	for _, item := range items {
		jar.Set(http_utils.ParseCookies(item.GetRequestHeader("Cookie")))
		if auth := item.GetRequestHeader("Authorization"); auth != "" {
			authorization = auth
		}
		responseHeaders, err := item.GetResponseHeadersAsMap()
		if err != nil {
			log.Debug().Err(err).Uint("history", item.ID).Msg("Could not read response headers")
			continue
		}
		jar.Set(http_utils.ParseSetCookies(responseHeaders))
	}

	header := http.Header{}
	if jar.Len() > 0 {
		header.Set("Cookie", http_utils.JoinCookies(jar.Cookies()))
	}
	if authorization != "" {
		header.Set("Authorization", authorization)
	}
	for name, value := range c.extraHeaders {
		header.Set(name, value)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: no session state known for %s", ErrProbeTransportUnavailable, target.Origin())
	}
	return header, nil
}
