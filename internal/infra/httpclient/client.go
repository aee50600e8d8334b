package httpclient

import (
	"net"
	"net/http"
	"time"
)

type Config struct {
	// Total timeout for a single lookup, including reading the body.
	// A context deadline can still override this.
	Timeout time.Duration

	// Transport / dial timeouts.
	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConnsPerHost int

	// UserAgent and Accept are set on every request that does not carry them.
	UserAgent string
	Accept    string
}

func DefaultConfig() Config {
	return Config{
		Timeout:             10 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 8,
		UserAgent:           "cardlist/dev",
		Accept:              "application/json",
	}
}

// New builds a client for a single lookup host. Connections are reused across
// lookups, so MaxIdleConnsPerHost bounds what a parallel import keeps open.
func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: &headerTransport{
			next:      tr,
			userAgent: cfg.UserAgent,
			accept:    cfg.Accept,
		},
		Timeout: cfg.Timeout,
	}
}

// headerTransport fills in default request headers.
type headerTransport struct {
	next      http.RoundTripper
	userAgent string
	accept    string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	needUA := t.userAgent != "" && req.Header.Get("User-Agent") == ""
	needAccept := t.accept != "" && req.Header.Get("Accept") == ""
	if needUA || needAccept {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		if needUA {
			req.Header.Set("User-Agent", t.userAgent)
		}
		if needAccept {
			req.Header.Set("Accept", t.accept)
		}
	}
	return t.next.RoundTrip(req)
}
