package listing

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gradewatch/watcher/internal/domain"
)

// Client fetches a product-listing page and turns its embedded JSON-LD into
// candidate variants. It implements domain.ListingSource.
type Client struct {
	http      *resty.Client
	userAgent string
}

// NewClient creates a new listing client with a bounded request timeout
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http:      resty.New().SetTimeout(timeout),
		userAgent: userAgent,
	}
}

// FetchVariants runs fetch, extract and normalize against one listing page
func (c *Client) FetchVariants(ctx context.Context, pageURL string) ([]domain.ProductVariant, error) {
	html, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	docs, err := ExtractDocuments(html)
	if err != nil {
		return nil, err
	}

	return Normalize(docs)
}

// fetchPage issues the single GET of a run, with a browser-like user agent and
// a cache-bypass header so stale stock data is not served
func (c *Client) fetchPage(ctx context.Context, pageURL string) (string, error) {
	log.Printf("[listing] fetching %s", pageURL)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent).
		SetHeader("Cache-Control", "no-cache").
		Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrFetch, resp.StatusCode())
	}

	log.Printf("[listing] fetched %d bytes", len(resp.Body()))
	return string(resp.Body()), nil
}
