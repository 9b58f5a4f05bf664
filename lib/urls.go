package lib

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// GetURLWithoutQueryString returns scheme://host/path for the given URL, dropping query and fragment
func GetURLWithoutQueryString(urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", err
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("url %q has no scheme or host", urlStr)
	}
	return parsedURL.Scheme + "://" + parsedURL.Host + parsedURL.EscapedPath(), nil
}

// DefaultPort returns the well known port for http and https, 0 otherwise
func DefaultPort(scheme string) int {
	switch strings.ToLower(scheme) {
	case "http":
		return 80
	case "https":
		return 443
	}
	return 0
}

// BracketHost wraps IPv6 literals in brackets so they can be joined with a scheme or port
func BracketHost(host string) string {
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		return "[" + host + "]"
	}
	return host
}

// BuildOrigin joins protocol, host and port, omitting the port when it is the default one
func BuildOrigin(protocol, host string, port int) string {
	protocol = strings.ToLower(protocol)
	if port == 0 || port == DefaultPort(protocol) {
		return protocol + "://" + BracketHost(host)
	}
	return protocol + "://" + net.JoinHostPort(strings.Trim(host, "[]"), strconv.Itoa(port))
}
