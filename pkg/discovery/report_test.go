package discovery

import (
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestReportPrettyEmpty(t *testing.T) {
	color.NoColor = true
	report := Report{Target: "http://h", Status: StatusCompleted}

	output := report.Pretty()
	assert.Contains(t, output, "No wsdl files found.")
	assert.Contains(t, output, "No wsdl files fuzzed.")
	assert.NotContains(t, output, "cancelled")
	assert.False(t, report.Discovered())
}

func TestReportPrettyListings(t *testing.T) {
	color.NoColor = true
	report := Report{
		Target:    "http://h",
		Status:    StatusCancelled,
		Found:     []string{"http://h/a?wsdl"},
		Confirmed: []string{"http://h/b?wsdl", "http://h/c?wsdl"},
		Errors:    []string{"boom"},
	}

	output := report.Pretty()
	assert.Contains(t, output, "1 wsdl file(s) found.")
	assert.Contains(t, output, "  http://h/a?wsdl")
	assert.Contains(t, output, "2 wsdl file(s) fuzzed.")
	assert.Contains(t, output, "  http://h/c?wsdl")
	assert.Contains(t, output, "Discovery was cancelled")
	assert.Contains(t, output, "error: boom")
	assert.True(t, report.Discovered())
}

func TestReportRecord(t *testing.T) {
	run := NewDiscoveryRun(Target{Protocol: "https", Host: "h", Port: 443}, DefaultOptions())
	run.Found.Add("https://h/x.WSDL")
	run.confirm("https://h/b?wsdl")
	run.confirm("https://h/a?wsdl")
	run.addProbed()
	run.addFailure()
	run.addError("recording failed")
	run.startedAt = time.Now().Add(-time.Second)
	run.finishedAt = time.Now()

	report := run.Report()
	assert.Equal(t, "https://h", report.Target)
	assert.Equal(t, []string{"https://h/x.wsdl"}, report.Found)
	assert.Equal(t, []string{"https://h/a?wsdl", "https://h/b?wsdl"}, report.Confirmed)

	record := report.Record(3)
	assert.Equal(t, report.ID, record.ID)
	assert.Equal(t, uint(3), *record.WorkspaceID)
	assert.Equal(t, "direct", record.Strategy)
	assert.Equal(t, report.Confirmed, record.ConfirmedURLs())
	assert.Equal(t, 1, record.ProbedCount)
	assert.Equal(t, 1, record.FailedCount)
	assert.Nil(t, report.Record(0).WorkspaceID)
}

func TestProbeNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := error(&ProbeNetworkError{URL: "http://h/a?wsdl", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed")

	var networkErr *ProbeNetworkError
	assert.True(t, errors.As(err, &networkErr))
	assert.False(t, networkErr.Timeout())

	timeout := &ProbeNetworkError{URL: "http://h/a?wsdl", Err: cause, TimedOut: true}
	assert.True(t, timeout.Timeout())
	assert.Contains(t, timeout.Error(), "timed out")
}

func TestOptionsValidateDefaults(t *testing.T) {
	options := Options{}
	assert.NoError(t, options.Validate())
	assert.Equal(t, DefaultConcurrency, options.Concurrency)
	assert.Equal(t, DefaultTimeout, options.Timeout)
	assert.Equal(t, 1024, options.MessageLimit)
	assert.Equal(t, StrategyDirect, options.Strategy)
	assert.NotNil(t, options.Limiter)

	options = Options{RateLimit: -1}
	assert.Error(t, options.Validate())
}
