package wsdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyURL(t *testing.T) {
	tests := []struct {
		url        string
		isWSDL     bool
		normalized string
	}{
		{"http://h/svc?wsdl", true, "http://h/svc?wsdl"},
		{"http://h/svc?WSDL", true, "http://h/svc?wsdl"},
		{"http://h/Service.asmx?Wsdl", true, "http://h/Service.asmx?wsdl"},
		{"http://h/defs/Service.WSDL", true, "http://h/defs/Service.wsdl"},
		{"http://h/defs/service.wsdl?version=2", true, "http://h/defs/service.wsdl?version=2"},
		{"http://h/svc?wsdl=1", true, "http://h/svc?wsdl=1"},
		{"http://h/Path/Index.HTML", false, "http://h/Path/Index.html"},
		{"http://h/svc?x=1", false, "http://h/svc?x=1"},
		{"http://h/wsdl", false, "http://h/wsdl"},
		{"ABC", false, "abc"},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := ClassifyURL(tt.url)
			assert.Equal(t, tt.isWSDL, result.IsWSDL)
			assert.Equal(t, tt.normalized, result.Normalized)
		})
	}
}

func TestNormalizeURLOnlyTouchesLastFourCharacters(t *testing.T) {
	assert.Equal(t, "HTTP://Host/Some/PATH.wsdl", NormalizeURL("HTTP://Host/Some/PATH.WSDL"))
	assert.Equal(t, "http://h/ABCD/efgh", NormalizeURL("http://h/ABCD/EFGH"))
}

func TestClassifyURLQueryAnyCase(t *testing.T) {
	for _, suffix := range []string{"?wsdl", "?WSDL", "?wSdL", "?Wsdl"} {
		assert.True(t, ClassifyURL("https://example.com/Service"+suffix).IsWSDL, suffix)
	}
}

func TestProbeURL(t *testing.T) {
	assert.Equal(t, "http://h/svc?wsdl", ProbeURL("http://h/svc"))
}
