// Package edgar implements the SEC EDGAR data collaborator: XBRL
// company-facts documents, company submissions (filing indexes), raw
// filing documents, and ticker-to-CIK resolution.
//
// No API key is required. The SEC mandates a User-Agent identifying the
// requester and caps traffic at 10 requests/second per user agent.
// Docs: https://www.sec.gov/edgar/sec-api-documentation
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/finbrook/edgarscope/internal/infra"
)

const (
	submissionsURL = "https://data.sec.gov/submissions"
	factsURL       = "https://data.sec.gov/api/xbrl/companyfacts"
	archivesURL    = "https://www.sec.gov/Archives/edgar/data"
	tickersURL     = "https://www.sec.gov/files/company_tickers.json"
)

// ErrSymbolNotFound is returned when a ticker cannot be resolved to a CIK.
type ErrSymbolNotFound struct {
	Symbol string
}

func (e *ErrSymbolNotFound) Error() string {
	return fmt.Sprintf("symbol %q not found in SEC ticker mapping", e.Symbol)
}

// Client talks to SEC EDGAR with caching and rate limiting.
type Client struct {
	userAgent string
	cache     *infra.Cache
	limiter   *infra.RateLimiter
}

// Options configures a Client.
type Options struct {
	UserAgent string
	CacheTTL  time.Duration
	RateLimit int // requests per second
}

// NewClient creates an EDGAR client. Zero-value options get defaults
// compatible with SEC policy.
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = "edgarscope/1.0 (github.com/finbrook/edgarscope)"
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 8
	}
	return &Client{
		userAgent: opts.UserAgent,
		cache:     infra.NewCache(opts.CacheTTL),
		limiter:   infra.NewRateLimiter(opts.RateLimit, time.Second),
	}
}

// CompanyFacts fetches the XBRL company-facts document for a CIK.
func (c *Client) CompanyFacts(ctx context.Context, cik string) (*CompanyFacts, error) {
	cacheKey := "facts:" + cik
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*CompanyFacts), nil
	}

	u := fmt.Sprintf("%s/CIK%s.json", factsURL, PadCIK(cik))
	var facts CompanyFacts
	if err := c.getJSON(ctx, u, &facts); err != nil {
		return nil, fmt.Errorf("edgar company facts for CIK %s: %w", cik, err)
	}

	c.cache.Set(cacheKey, &facts)
	return &facts, nil
}

// FilingIndex fetches a company's recent-filings listing, ordered
// most-recent-first as EDGAR delivers it.
func (c *Client) FilingIndex(ctx context.Context, cik string) (*FilingIndex, error) {
	cacheKey := "index:" + cik
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*FilingIndex), nil
	}

	u := fmt.Sprintf("%s/CIK%s.json", submissionsURL, PadCIK(cik))
	var resp submissionsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("edgar submissions for CIK %s: %w", cik, err)
	}

	recent := resp.Filings.Recent
	idx := &FilingIndex{
		CIK:              strings.TrimLeft(resp.CIK, "0"),
		Name:             resp.Name,
		Forms:            recent.Form,
		FilingDates:      recent.FilingDate,
		AccessionNumbers: recent.AccessionNumber,
		PrimaryDocuments: recent.PrimaryDocument,
	}
	if idx.CIK == "" {
		idx.CIK = cik
	}

	c.cache.Set(cacheKey, idx)
	return idx, nil
}

// FilingDocument fetches the raw text of one document within a filing.
func (c *Client) FilingDocument(ctx context.Context, cik, accession, filename string) (string, error) {
	cacheKey := "doc:" + accession + ":" + filename
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(string), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/%s/%s/%s", archivesURL, strings.TrimLeft(cik, "0"),
		strings.ReplaceAll(accession, "-", ""), filename)
	body, _, err := infra.DoGet(ctx, u, c.headers())
	if err != nil {
		return "", fmt.Errorf("edgar filing document %s: %w", accession, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read filing document %s: %w", accession, err)
	}

	doc := string(data)
	c.cache.Set(cacheKey, doc)
	return doc, nil
}

// ResolveSymbol maps a ticker symbol to its CIK using the SEC's
// company_tickers.json mapping. The mapping is cached for an hour.
func (c *Client) ResolveSymbol(ctx context.Context, symbol string) (string, error) {
	const cacheKey = "tickers"

	var entries map[string]tickerEntry
	if cached, ok := c.cache.Get(cacheKey); ok {
		entries = cached.(map[string]tickerEntry)
	} else {
		if err := c.getJSON(ctx, tickersURL, &entries); err != nil {
			return "", fmt.Errorf("edgar ticker mapping: %w", err)
		}
		c.cache.SetWithTTL(cacheKey, entries, time.Hour)
	}

	want := strings.ToUpper(strings.TrimSpace(symbol))
	for _, entry := range entries {
		if strings.ToUpper(entry.Ticker) == want {
			return fmt.Sprintf("%d", entry.CIK), nil
		}
	}
	return "", &ErrSymbolNotFound{Symbol: symbol}
}

// Ping checks connectivity to SEC EDGAR.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	body, _, err := infra.DoGet(ctx, submissionsURL+"/CIK0000320193.json", c.headers()) // Apple
	if err != nil {
		return fmt.Errorf("edgar ping: %w", err)
	}
	body.Close()
	return nil
}

// --- Shared helpers ---

func (c *Client) headers() map[string]string {
	return map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "application/json",
	}
}

// getJSON performs a rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	body, _, err := infra.DoGet(ctx, url, c.headers())
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read EDGAR response: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse EDGAR JSON: %w", err)
	}
	return nil
}

// PadCIK pads a CIK number to 10 digits with leading zeros.
func PadCIK(cik string) string {
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}
