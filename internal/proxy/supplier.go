package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

const (
	validationTimeout     = 5 * time.Second
	validationConcurrency = 16
)

// ProxySupplier hands out proxies in round-robin order. Get returns "" when
// no proxy is configured, meaning a direct connection.
type ProxySupplier interface {
	Get() string
	Len() int
}

type proxySupplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewProxySupplier checks every configured proxy against testURL and keeps the
// ones that answer with a success status, in their configured order.
func NewProxySupplier(ctx context.Context, proxies []string, testURL, userAgent string) ProxySupplier {
	if len(proxies) == 0 {
		return &proxySupplier{}
	}

	log.Infof("🔄 Testing %d proxies against %s", len(proxies), testURL)

	working := make([]bool, len(proxies))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(validationConcurrency)

	for i, proxyURL := range proxies {
		g.Go(func() error {
			working[i] = isProxyValid(ctx, proxyURL, testURL, userAgent)
			return nil
		})
	}
	// workers never return errors
	_ = g.Wait()

	valid := make([]string, 0, len(proxies))
	for i, ok := range working {
		if ok {
			valid = append(valid, proxies[i])
		}
	}

	log.Infof("✅ Proxy supplier ready with %d working proxies out of %d", len(valid), len(proxies))
	return &proxySupplier{proxies: valid}
}

// Get returns the next proxy URL in round-robin fashion
func (p *proxySupplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxy := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)
	return proxy
}

func (p *proxySupplier) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.proxies)
}

func isProxyValid(ctx context.Context, proxyURL, testURL, userAgent string) bool {
	client := resty.New().
		SetTimeout(validationTimeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetProxy(proxyURL)

	resp, err := client.R().
		SetContext(ctx).
		Get(testURL)
	if err != nil {
		log.WithField("proxy", proxyURL).Warnf("❌ Proxy test failed: %v", err)
		return false
	}

	if !resp.IsSuccess() {
		log.WithField("proxy", proxyURL).Warnf("❌ Proxy test failed with status: %s", resp.Status())
		return false
	}

	log.WithField("proxy", proxyURL).Debug("✅ Proxy is working")
	return true
}
