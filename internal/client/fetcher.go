package client

import (
	"context"
	"strings"
	"time"

	"github.com/Esubaalew/2merkato/internal/config"
	"github.com/Esubaalew/2merkato/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Fetcher retrieves a page and returns its markup as valid UTF-8 text
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type httpFetcher struct {
	rl            ratelimit.Limiter
	httpClient    *resty.Client
	proxySupplier proxy.ProxySupplier
}

// NewFetcher builds the resty-backed fetcher. proxySupplier may be nil.
func NewFetcher(cfg config.SiteConfig, proxySupplier proxy.ProxySupplier) Fetcher {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetHeader("User-Agent", cfg.UserAgent)

	if cfg.MaxRetries > 0 {
		client.
			SetRetryWaitTime(2 * time.Second).
			SetRetryMaxWaitTime(10 * time.Second)
	}

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using initial proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &httpFetcher{
		rl:            rl,
		httpClient:    client,
		proxySupplier: proxySupplier,
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.rl.Take()

	resp, err := f.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return "", &FetchError{Kind: KindTransport, URL: url, Err: ctx.Err()}
		}
		f.rotateProxy()
		return "", &FetchError{Kind: KindTransport, URL: url, Err: err}
	}

	if !resp.IsSuccess() {
		return "", &FetchError{Kind: KindHTTPStatus, URL: url, StatusCode: resp.StatusCode()}
	}

	log.Debugf("Fetched %s (%d)", url, resp.StatusCode())
	return strings.ToValidUTF8(resp.String(), "\uFFFD"), nil
}

// rotateProxy moves to the next proxy after a transport failure so that the
// following requests avoid the one that just failed.
func (f *httpFetcher) rotateProxy() {
	if f.proxySupplier == nil || f.proxySupplier.Len() < 2 {
		return
	}
	next := f.proxySupplier.Get()
	f.httpClient.SetProxy(next)
	log.Infof("🔄 Switching to proxy: %s", next)
}
