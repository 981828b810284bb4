package httputil

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"asp_listings/config"
)

type Clients struct {
	API   *http.Client // listings and detail lookups
	Leads *http.Client // lead submission and IP lookup
}

func NewClients(httpCfg config.HTTPConfig) *Clients {
	transport := &headerTransport{
		base:      http.DefaultTransport,
		userAgent: httpCfg.UserAgent,
	}

	return &Clients{
		API: &http.Client{
			Timeout:   httpCfg.Timeout,
			Transport: transport,
		},
		Leads: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

// headerTransport stamps every outbound request with the configured
// User-Agent and a fresh X-Request-ID.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.base.RoundTrip(req)
}

const RequestIDHeader = "X-Request-ID"
