package discovery

import (
	"context"
	"fmt"

	"github.com/pyneda/wsdlwizard/db"
	"github.com/pyneda/wsdlwizard/pkg/ratelimit"
	"github.com/pyneda/wsdlwizard/pkg/wsdl"
	"github.com/rs/zerolog/log"
)

// ProbeResult is the outcome of probing one candidate. Response holds the
// recorded transaction of a confirmed probe.
type ProbeResult struct {
	URL        string
	Confirmed  bool
	Skipped    bool
	StatusCode int
	Keyword    string
	Response   *db.History
	Err        error
}

// Prober tests candidates for a hidden WSDL by requesting candidate?wsdl
type Prober struct {
	strategy     ProbeStrategy
	collaborator Collaborator
	limiter      ratelimit.RateLimiter
	messageLimit int
	requireOK    bool
}

func NewProber(strategy ProbeStrategy, collaborator Collaborator, options Options) *Prober {
	limiter := options.Limiter
	if limiter == nil {
		limiter = ratelimit.NewNoOpRateLimiter()
	}
	return &Prober{
		strategy:     strategy,
		collaborator: collaborator,
		limiter:      limiter,
		messageLimit: options.MessageLimit,
		requireOK:    options.RequireOK,
	}
}

// Probe checks a single candidate. Probe URLs already found or already probed
// during the run are skipped without issuing a request.
func (p *Prober) Probe(ctx context.Context, run *DiscoveryRun, candidate string) ProbeResult {
	probeURL := wsdl.ProbeURL(candidate)
	result := ProbeResult{URL: probeURL}

	if run.Found.Contains(probeURL) || !run.markProbed(probeURL) {
		result.Skipped = true
		return result
	}

	if err := p.limiter.Acquire(ctx, run.Target.Host); err != nil {
		result.Err = fmt.Errorf("waiting for rate limiter: %w", err)
		return result
	}

	response, err := p.strategy.Get(ctx, probeURL)
	run.addProbed()
	if err != nil {
		result.Err = err
		return result
	}
	result.StatusCode = response.StatusCode

	if p.requireOK && response.StatusCode != 200 {
		log.Debug().Str("url", probeURL).Int("status_code", response.StatusCode).Msg("Ignoring non 200 probe response")
		return result
	}

	keyword, ok := wsdl.MatchedKeyword(response.Body, p.messageLimit)
	if !ok {
		return result
	}
	result.Keyword = keyword
	result.Confirmed = run.confirm(probeURL)
	if !result.Confirmed {
		return result
	}
	log.Info().Str("url", probeURL).Str("keyword", keyword).Int("status_code", response.StatusCode).Msg("Confirmed wsdl file")

	if response.History != nil {
		response.History.Note = joinNotes(fmt.Sprintf("WSDL confirmed by keyword %s", keyword), response.History.Note)
	}
	recorded, err := p.collaborator.RecordTransaction(ctx, response)
	if err != nil {
		log.Warn().Err(err).Str("url", probeURL).Msg("Could not record confirmed wsdl transaction")
		run.addError(fmt.Sprintf("recording %s: %v", probeURL, err))
	}
	result.Response = recorded
	return result
}
