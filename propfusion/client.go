package propfusion

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"asp_listings/config"
	"asp_listings/logging"
)

// Client performs GETs against the PropFusion API. Successful bodies are
// cached by URL for the configured TTL and identical concurrent requests
// share one round trip.
type Client struct {
	http  *http.Client
	cache *expirable.LRU[string, []byte]
	group singleflight.Group
}

func NewClient(httpClient *http.Client, cacheCfg config.CacheConfig) *Client {
	c := &Client{http: httpClient}
	if cacheCfg.Size > 0 && cacheCfg.TTL > 0 {
		c.cache = expirable.NewLRU[string, []byte](cacheCfg.Size, nil, cacheCfg.TTL)
	}
	return c
}

// StatusError is returned for any non-200 answer.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("PropFusion API error %d: %s", e.StatusCode, e.Body)
}

type bypassCacheKey struct{}

// BypassCache marks ctx so the request goes to the network even when a cached
// body exists. The fresh body still replaces the cached one.
func BypassCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassCacheKey{}, true)
}

// CacheBypassed reports whether ctx was marked by BypassCache.
func CacheBypassed(ctx context.Context) bool {
	v, _ := ctx.Value(bypassCacheKey{}).(bool)
	return v
}

func (c *Client) get(ctx context.Context, rawURL string, limiter *rate.Limiter) ([]byte, error) {
	if c.cache != nil && !CacheBypassed(ctx) {
		if body, ok := c.cache.Get(rawURL); ok {
			logging.Debugf("PropFusion: cache hit %s", rawURL)
			return body, nil
		}
	}

	// The round trip is shared by every caller of rawURL, so it must not die
	// with the first caller's context. The http client timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(rawURL, func() (any, error) {
		if limiter != nil {
			if err := limiter.Wait(shared); err != nil {
				return nil, err
			}
		}
		return c.do(shared, rawURL)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		body := res.Val.([]byte)
		if res.Shared {
			logging.Debugf("PropFusion: shared in-flight response for %s", rawURL)
		}
		return body, nil
	}
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("PropFusion: GET %s", rawURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncateBody(body)}
	}

	if c.cache != nil {
		c.cache.Add(rawURL, body)
	}
	return body, nil
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
