package lib

import (
	"testing"
)

func TestGetURLWithoutQueryString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		hasErr   bool
	}{
		{"http://h/svc?x=1", "http://h/svc", false},
		{"https://example.com:8443/a/b?x=1&y=2#frag", "https://example.com:8443/a/b", false},
		{"http://h?x=1", "http://h", false},
		{"http://h/a%20b?x=1", "http://h/a%20b", false},
		{"/relative?x=1", "", true},
		{"http://[::1:bad", "", true},
	}

	for _, tt := range tests {
		result, err := GetURLWithoutQueryString(tt.input)
		if (err != nil) != tt.hasErr {
			t.Errorf("%s: expected error %v, got %v", tt.input, tt.hasErr, err)
		}
		if result != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.input, tt.expected, result)
		}
	}
}

func TestBuildOrigin(t *testing.T) {
	tests := []struct {
		protocol string
		host     string
		port     int
		expected string
	}{
		{"http", "example.com", 80, "http://example.com"},
		{"https", "example.com", 443, "https://example.com"},
		{"HTTPS", "example.com", 8443, "https://example.com:8443"},
		{"http", "127.0.0.1", 0, "http://127.0.0.1"},
		{"http", "::1", 8080, "http://[::1]:8080"},
		{"http", "::1", 80, "http://[::1]"},
		{"https", "[2001:db8::1]", 8443, "https://[2001:db8::1]:8443"},
	}

	for _, tt := range tests {
		if result := BuildOrigin(tt.protocol, tt.host, tt.port); result != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, result)
		}
	}
}

func TestBracketHost(t *testing.T) {
	tests := map[string]string{
		"example.com": "example.com",
		"::1":         "[::1]",
		"[::1]":       "[::1]",
		"10.0.0.1":    "10.0.0.1",
	}
	for input, expected := range tests {
		if result := BracketHost(input); result != expected {
			t.Errorf("%s: expected %s, got %s", input, expected, result)
		}
	}
}
