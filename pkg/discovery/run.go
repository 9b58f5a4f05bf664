package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pyneda/wsdlwizard/lib"
	"github.com/pyneda/wsdlwizard/pkg/wsdl"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StateFuzzing  State = "fuzzing"
	StateReported State = "reported"
)

// DiscoveryRun holds the state of one discovery against one target
type DiscoveryRun struct {
	ID         uuid.UUID
	Target     Target
	Options    Options
	Found      *wsdl.FoundSet
	Candidates *wsdl.CandidateSet

	mu          sync.Mutex
	state       State
	confirmed   []string
	probed      map[string]struct{}
	probedCount int
	failedCount int
	errors      []string
	cancelled   bool
	startedAt   time.Time
	finishedAt  time.Time
}

func NewDiscoveryRun(target Target, options Options) *DiscoveryRun {
	return &DiscoveryRun{
		ID:         uuid.New(),
		Target:     target,
		Options:    options,
		Found:      wsdl.NewFoundSet(),
		Candidates: wsdl.NewCandidateSet(),
		state:      StateIdle,
		probed:     make(map[string]struct{}),
	}
}

func (r *DiscoveryRun) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *DiscoveryRun) setState(state State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == state {
		return
	}
	log.Debug().Str("run", r.ID.String()).Str("from", string(r.state)).Str("to", string(state)).Msg("Discovery state change")
	r.state = state
}

// markProbed claims probeURL for this run, returning false if it was already claimed
func (r *DiscoveryRun) markProbed(probeURL string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.probed[probeURL]; ok {
		return false
	}
	r.probed[probeURL] = struct{}{}
	return true
}

func (r *DiscoveryRun) addProbed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probedCount++
}

func (r *DiscoveryRun) confirm(probeURL string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.confirmed {
		if u == probeURL {
			return false
		}
	}
	r.confirmed = append(r.confirmed, probeURL)
	return true
}

func (r *DiscoveryRun) addFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failedCount++
}

func (r *DiscoveryRun) addError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *DiscoveryRun) markCancelled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = true
}

// Confirmed returns the confirmed probe URLs sorted lexically
func (r *DiscoveryRun) Confirmed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lib.SortedCopy(r.confirmed)
}

// Scan classifies the reliable transactions of the corpus, building the found and candidate sets
func (r *DiscoveryRun) Scan(ctx context.Context, corpus []ObservedTransaction) {
	r.setState(StateScanning)
	skipped := 0
	for _, transaction := range corpus {
		if ctx.Err() != nil {
			r.markCancelled()
			return
		}
		if !transaction.Reliable() {
			skipped++
			continue
		}
		if wsdl.ClassifyURL(transaction.URL).IsWSDL {
			if r.Found.Add(transaction.URL) {
				log.Info().Str("url", transaction.URL).Msg("Found wsdl file in history")
			}
			continue
		}
		r.Candidates.Add(transaction.URL, r.Found)
	}
	log.Info().
		Str("target", r.Target.Origin()).
		Int("transactions", len(corpus)).
		Int("skipped", skipped).
		Int("found", r.Found.Len()).
		Int("candidates", r.Candidates.Len()).
		Msg("Corpus scanned")
}

// Fuzz probes every candidate with a bounded pool of workers. Failures of
// individual candidates are logged and counted, never returned.
func (r *DiscoveryRun) Fuzz(ctx context.Context, prober *Prober) {
	r.setState(StateFuzzing)
	concurrency := r.Options.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(concurrency)
	for _, candidate := range r.Candidates.Items() {
		candidate := candidate
		p.Go(func(ctx context.Context) error {
			if ctx.Err() != nil {
				return nil
			}
			result := prober.Probe(ctx, r, candidate)
			if result.Err == nil {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			r.addFailure()
			var networkErr *ProbeNetworkError
			if errors.As(result.Err, &networkErr) {
				log.Warn().Err(networkErr.Err).Bool("timeout", networkErr.Timeout()).Str("url", result.URL).Msg("Probe request failed")
			} else {
				log.Warn().Err(result.Err).Str("url", result.URL).Msg("Probe failed")
			}
			return nil
		})
	}
	_ = p.Wait()

	if ctx.Err() != nil {
		r.markCancelled()
	}
}

// Run performs a complete discovery against target: scan the corpus, probe the
// candidates and report. Only an invalid target, invalid options or a corpus
// read failure return an error; cancellation yields a cancelled report.
func Run(ctx context.Context, collaborator Collaborator, target Target, options Options) (*Report, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	run := NewDiscoveryRun(target, options)
	run.startedAt = time.Now()
	log.Info().Str("run", run.ID.String()).Str("target", target.Origin()).Str("strategy", string(options.Strategy)).Msg("Starting wsdl discovery")

	run.setState(StateScanning)
	corpus, err := collaborator.Corpus(ctx, target)
	if err != nil {
		if ctx.Err() != nil {
			run.markCancelled()
			return run.finish(), nil
		}
		return nil, fmt.Errorf("reading corpus for %s: %w", target.Origin(), err)
	}
	run.Scan(ctx, corpus)
	if ctx.Err() != nil {
		run.markCancelled()
		return run.finish(), nil
	}

	run.setState(StateFuzzing)
	strategy, err := newStrategy(ctx, options, collaborator, target)
	if err != nil {
		if ctx.Err() != nil {
			run.markCancelled()
			return run.finish(), nil
		}
		log.Error().Err(err).Str("target", target.Origin()).Msg("Probe strategy unavailable, skipping fuzzing")
		run.addError(err.Error())
		return run.finish(), nil
	}
	run.Fuzz(ctx, NewProber(strategy, collaborator, options))
	return run.finish(), nil
}

func (r *DiscoveryRun) finish() *Report {
	r.setState(StateReported)
	r.mu.Lock()
	r.finishedAt = time.Now()
	r.mu.Unlock()
	report := r.Report()
	log.Info().
		Str("run", r.ID.String()).
		Str("status", report.Status).
		Int("found", len(report.Found)).
		Int("confirmed", len(report.Confirmed)).
		Int("probed", report.ProbedCount).
		Int("failed", report.FailedCount).
		Msg("Wsdl discovery finished")
	return report
}
