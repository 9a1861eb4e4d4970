// Package httpclient builds the shared HTTP client used for project pages and downloads.
package httpclient

import (
	"net"
	"net/http"
	"time"

	"go.trai.ch/modlock/internal/core/domain"
)

const (
	dialTimeout         = 30 * time.Second
	keepAlive           = 30 * time.Second
	fallbackDelay       = 300 * time.Millisecond
	maxIdleConns        = 100
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
	expectContinue      = 1 * time.Second
)

// New returns a client whose overall timeout and User-Agent come from settings.
func New(settings *domain.Settings) *http.Client {
	dialer := &net.Dialer{
		Timeout:       dialTimeout,
		KeepAlive:     keepAlive,
		FallbackDelay: fallbackDelay,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          maxIdleConns,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ExpectContinueTimeout: expectContinue,
	}

	return &http.Client{
		Transport: &userAgentTransport{next: transport, userAgent: settings.UserAgent},
		Timeout:   settings.Timeout,
	}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(clone)
}
