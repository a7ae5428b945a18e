// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download fetches catalog PDFs into a topic-organized store.
// Each work item runs through an ordered chain of fetch strategies until
// one places the PDF on disk or the chain is exhausted.
package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/funkybooboo/library/pkg/types"
)

const (
	// defaultBrowserUA is the browser identity used by the primary client.
	// Paper hosts routinely refuse non-browser user agents.
	defaultBrowserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// defaultFallbackUA is the distinct identity of the alternate client.
	defaultFallbackUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0"

	// defaultSearchReferer simulates traffic arriving from a search engine.
	defaultSearchReferer = "https://www.google.com/"

	// defaultPublisherReferer points at a known publisher domain.
	defaultPublisherReferer = "https://dl.acm.org/"

	defaultTimeout = 60 * time.Second
)

// strategy is one fetch attempt. Strategies run in order, at most once per
// item per run; the first nil error wins.
type strategy struct {
	name  string
	fetch func(ctx context.Context, link, destPath string) error
}

// Chain runs the layered fetch fallback for single work items. It is safe
// for concurrent use: its only shared state is the HTTP clients and the
// filesystem, and each item writes to a distinct path.
type Chain struct {
	cfg        types.DownloadConfig
	client     *http.Client
	collector  *colly.Collector
	limiter    *Limiter
	strategies []strategy
}

// NewChain builds the strategy chain from configuration, filling in defaults
// for any unset header values. Loading a configured cookie file is the only
// failure mode.
func NewChain(cfg types.DownloadConfig) (*Chain, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultBrowserUA
	}
	if cfg.SearchReferer == "" {
		cfg.SearchReferer = defaultSearchReferer
	}
	if cfg.FallbackUserAgent == "" {
		cfg.FallbackUserAgent = defaultFallbackUA
	}
	if cfg.PublisherReferer == "" {
		cfg.PublisherReferer = defaultPublisherReferer
	}

	jar, err := LoadCookieJar(cfg.CookieFile)
	if err != nil {
		return nil, err
	}

	collector := colly.NewCollector()
	collector.IgnoreRobotsTxt = true
	collector.AllowURLRevisit = true
	collector.UserAgent = cfg.FallbackUserAgent
	collector.SetRequestTimeout(cfg.Timeout)

	c := &Chain{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		collector: collector,
		limiter:   NewLimiter(cfg.RequestsPerSecond),
	}
	c.strategies = []strategy{
		{name: "direct", fetch: c.fetchDirect},
		{name: "search-referer", fetch: c.fetchSearchReferer},
		{name: "alternate-client", fetch: c.fetchColly},
	}
	return c, nil
}

// Fetch runs the chain for one work item and returns its outcome. Per-item
// errors never escape as errors of the run: a filesystem or transport
// problem becomes a failed outcome and the returned error describes it for
// the status log.
func (c *Chain) Fetch(ctx context.Context, item types.WorkItem) (types.Outcome, error) {
	out := types.Outcome{
		TopicSlug: Slug(item.Topic),
		TitleSlug: Slug(item.Title),
		Title:     item.Title,
		Link:      item.Link,
	}
	destPath := PDFPath(c.cfg.PapersDir, out.TopicSlug, out.TitleSlug)

	// Already on disk: satisfied without any network call, which makes a
	// partially completed run safely resumable.
	if _, err := os.Stat(destPath); err == nil {
		out.Status = types.StatusSkipped
		return out, nil
	}

	// MkdirAll tolerates the directory already existing, so concurrent
	// items under the same topic never conflict.
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		out.Status = types.StatusFailed
		return out, fmt.Errorf("creating topic directory: %w", err)
	}

	var reasons []string
	for _, s := range c.strategies {
		if err := c.limiter.Wait(ctx, item.Link); err != nil {
			out.Status = types.StatusFailed
			return out, err
		}
		if err := s.fetch(ctx, item.Link, destPath); err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: %v", s.name, err))
			continue
		}
		out.Status = types.StatusDownloaded
		return out, nil
	}

	out.Status = types.StatusFailed
	return out, fmt.Errorf("all strategies failed: %s", strings.Join(reasons, "; "))
}

// fetchDirect is the primary strategy: browser identity, PDF accept header,
// session cookies when configured, and the target link as its own referer.
func (c *Chain) fetchDirect(ctx context.Context, link, destPath string) error {
	return c.fetchHTTP(ctx, link, destPath, c.cfg.UserAgent, link)
}

// fetchSearchReferer repeats the primary request pretending the click came
// from a search engine results page.
func (c *Chain) fetchSearchReferer(ctx context.Context, link, destPath string) error {
	return c.fetchHTTP(ctx, link, destPath, c.cfg.UserAgent, c.cfg.SearchReferer)
}

// fetchHTTP downloads link to destPath with the primary net/http client,
// writing to a temp file and renaming on verified success so a failed
// transfer never leaves a truncated PDF at the final path.
func (c *Chain) fetchHTTP(ctx context.Context, link, destPath, userAgent, referer string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/pdf")
	req.Header.Set("Referer", referer)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, link)
	}

	return writeAtomic(destPath, resp.Body)
}

// fetchColly is the last resort: a second client implementation with
// different TLS, redirect, and header-ordering behavior than net/http,
// a different user agent, and a fixed publisher referer.
func (c *Chain) fetchColly(ctx context.Context, link, destPath string) error {
	collector := c.collector.Clone()

	var body []byte
	var fetchErr error

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/pdf")
		r.Headers.Set("Referer", c.cfg.PublisherReferer)
	})
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(link)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("visit failed: %w", err)
		}
	}
	if fetchErr != nil {
		return fmt.Errorf("response failed: %w", fetchErr)
	}
	if len(body) == 0 {
		return fmt.Errorf("empty response from %s", link)
	}

	return writeAtomic(destPath, bytes.NewReader(body))
}

// writeAtomic streams r into a temp file next to destPath and renames it
// into place on full success, removing the temp file on any failure.
func writeAtomic(destPath string, r io.Reader) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, r)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
