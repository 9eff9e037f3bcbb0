package edgar

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
)

const browseURL = "https://www.sec.gov/cgi-bin/browse-edgar"

// FeedEntry is one filing from a company's EDGAR Atom feed.
type FeedEntry struct {
	Title    string `json:"title"`
	FormType string `json:"form_type,omitempty"`
	Updated  string `json:"updated,omitempty"`
	Link     string `json:"link,omitempty"`
}

// RecentFilingsFeed fetches a company's latest filings from the EDGAR
// browse Atom feed. formType filters to one form ("4", "10-K", ...);
// empty means all forms. count caps the number of entries.
func (c *Client) RecentFilingsFeed(ctx context.Context, cik, formType string, count int) ([]FeedEntry, error) {
	if count <= 0 {
		count = 20
	}
	cacheKey := fmt.Sprintf("feed:%s:%s:%d", cik, formType, count)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]FeedEntry), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("action", "getcompany")
	q.Set("CIK", PadCIK(cik))
	q.Set("type", formType)
	q.Set("owner", "include")
	q.Set("count", fmt.Sprintf("%d", count))
	q.Set("output", "atom")

	parser := gofeed.NewParser()
	parser.UserAgent = c.userAgent
	feed, err := parser.ParseURLWithContext(browseURL+"?"+q.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("edgar atom feed for CIK %s: %w", cik, err)
	}

	entries := make([]FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(entries) >= count {
			break
		}
		e := FeedEntry{
			Title: item.Title,
			Link:  item.Link,
		}
		if len(item.Categories) > 0 {
			e.FormType = item.Categories[0]
		}
		if item.UpdatedParsed != nil {
			e.Updated = item.UpdatedParsed.Format(time.RFC3339)
		} else {
			e.Updated = item.Updated
		}
		entries = append(entries, e)
	}

	c.cache.SetWithTTL(cacheKey, entries, 5*time.Minute)
	return entries, nil
}
