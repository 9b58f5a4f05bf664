package http_utils

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
)

const defaultConnsPerHost = 10

// proxyFunc routes requests through the configured upstream proxy, or the environment one when unset
func proxyFunc(proxy string) func(*http.Request) (*url.URL, error) {
	if proxy == "" {
		return http.ProxyFromEnvironment
	}
	proxyURL, err := url.Parse(proxy)
	if err != nil || proxyURL.Host == "" {
		log.Error().Err(err).Str("proxy", proxy).Msg("Invalid navigation proxy, using environment proxy")
		return http.ProxyFromEnvironment
	}
	return http.ProxyURL(proxyURL)
}

// CreateHttpTransport builds the transport shared by wsdl requests. Connections to the target are
// capped at wsdl.concurrency, every request goes to the same host.
// Certificate verification is disabled, targets commonly use self-signed certificates.
func CreateHttpTransport() *http.Transport {
	connsPerHost := viper.GetInt("wsdl.concurrency")
	if connsPerHost <= 0 {
		connsPerHost = defaultConnsPerHost
	}
	transport := &http.Transport{
		Proxy: proxyFunc(viper.GetString("navigation.proxy")),
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxConnsPerHost:     connsPerHost,
		MaxIdleConnsPerHost: connsPerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		log.Warn().Err(err).Msg("Could not enable HTTP/2 on transport, using HTTP/1.1 only")
	}
	return transport
}

// CreateHttpClient creates a regular HTTP client. Timeouts are applied per request through the context.
func CreateHttpClient() *http.Client {
	return &http.Client{
		Transport: CreateHttpTransport(),
	}
}
