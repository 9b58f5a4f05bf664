// Package proxy implements a recording MITM proxy feeding the history corpus.
package proxy

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elazarl/goproxy"
	"github.com/pyneda/wsdlwizard/db"
	"github.com/pyneda/wsdlwizard/pkg/http_utils"
	"github.com/rs/zerolog/log"
)

// InternalHost is answered by the proxy itself instead of being forwarded
const InternalHost = "wsdlwizard"

const homepageHTML = `<html><head><title>wsdlwizard proxy</title></head><body>
<h1>wsdlwizard proxy</h1>
<p>Traffic sent through this proxy is stored in the history used for wsdl discovery.</p>
</body></html>`

// Proxy records every proxied transaction into the history of a workspace.
// CACertFile and CAKeyFile select the CA used to intercept TLS, the built in
// goproxy CA is used when they are empty.
type Proxy struct {
	Host        string
	Port        int
	Verbose     bool
	WorkspaceID uint
	CACertFile  string
	CAKeyFile   string
}

func (p *Proxy) Address() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// Handler builds the goproxy server with the recording hooks installed
func (p *Proxy) Handler() *goproxy.ProxyHttpServer {
	proxy := goproxy.NewProxyHttpServer()
	proxy.Verbose = p.Verbose

	proxy.OnRequest().HandleConnect(goproxy.AlwaysMitm)
	proxy.OnRequest(goproxy.DstHostIs(InternalHost)).DoFunc(
		func(r *http.Request, ctx *goproxy.ProxyCtx) (*http.Request, *http.Response) {
			return nil, goproxy.NewResponse(r, goproxy.ContentTypeHtml, http.StatusOK, homepageHTML)
		},
	)
	proxy.OnRequest().DoFunc(
		func(r *http.Request, ctx *goproxy.ProxyCtx) (*http.Request, *http.Response) {
			log.Debug().Str("method", r.Method).Str("url", r.URL.String()).Msg("Proxy received request")
			return r, nil
		},
	)
	proxy.OnResponse().DoFunc(
		func(resp *http.Response, ctx *goproxy.ProxyCtx) *http.Response {
			if resp == nil || resp.Request == nil {
				return resp
			}
			if strings.EqualFold(resp.Request.URL.Hostname(), InternalHost) {
				return resp
			}
			history, err := http_utils.ReadHttpResponseAndCreateHistory(resp, http_utils.HistoryCreationOptions{
				Source:      db.SourceProxy,
				WorkspaceID: p.WorkspaceID,
			})
			if err != nil {
				log.Error().Err(err).Str("url", resp.Request.URL.String()).Msg("Proxy could not record transaction")
				return resp
			}
			log.Info().Uint("history", history.ID).Int("status_code", history.StatusCode).Str("url", history.URL).Msg("Proxy recorded transaction")
			return resp
		},
	)
	return proxy
}

// installCA makes goproxy sign intercepted TLS connections with the configured CA pair
func (p *Proxy) installCA() error {
	if p.CACertFile == "" || p.CAKeyFile == "" {
		return fmt.Errorf("both the CA certificate and key are required, got cert=%q key=%q", p.CACertFile, p.CAKeyFile)
	}
	ca, err := tls.LoadX509KeyPair(p.CACertFile, p.CAKeyFile)
	if err != nil {
		return err
	}
	if ca.Leaf, err = x509.ParseCertificate(ca.Certificate[0]); err != nil {
		return err
	}
	if !ca.Leaf.IsCA {
		return fmt.Errorf("certificate %s is not a CA", p.CACertFile)
	}
	tlsConfig := goproxy.TLSConfigFromCA(&ca)
	goproxy.GoproxyCa = ca
	goproxy.MitmConnect = &goproxy.ConnectAction{Action: goproxy.ConnectMitm, TLSConfig: tlsConfig}
	log.Info().Str("subject", ca.Leaf.Subject.CommonName).Msg("Proxy using custom CA")
	return nil
}

// Run serves the proxy until ctx is done
func (p *Proxy) Run(ctx context.Context) error {
	if p.CACertFile != "" || p.CAKeyFile != "" {
		if err := p.installCA(); err != nil {
			return fmt.Errorf("failed to set CA: %w", err)
		}
	}

	server := &http.Server{
		Addr:              p.Address(),
		Handler:           p.Handler(),
		ReadHeaderTimeout: 30 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", p.Address()).Uint("workspace", p.WorkspaceID).Msg("Proxy starting up")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Str("address", p.Address()).Msg("Proxy shutting down")
		return server.Shutdown(shutdownCtx)
	}
}
