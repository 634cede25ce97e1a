package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gradewatch/watcher/internal/domain"
	"golang.org/x/time/rate"
)

// Config holds the settings for one webhook client
type Config struct {
	WebhookURL string
	// UseThumbnail picks between the thumbnail and full-image embed variants
	UseThumbnail bool
	EmbedColor   int
	FooterText   string
	// PerSecond caps outbound calls; webhooks throttle around 5/s
	PerSecond float64
}

// Client posts rich-card notifications to a Discord webhook. It implements
// domain.NotificationAdapter.
type Client struct {
	http    *resty.Client
	cfg     Config
	limiter *rate.Limiter
	now     func() time.Time
}

// NewClient creates a new Discord webhook client
func NewClient(cfg Config) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.PerSecond), 5),
		now:     time.Now,
	}
}

// Name identifies this adapter in dispatch results and logs
func (c *Client) Name() string {
	return "discord"
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embedImage struct {
	URL string `json:"url"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Footer    embedFooter  `json:"footer"`
	Timestamp string       `json:"timestamp"`
	Thumbnail *embedImage  `json:"thumbnail,omitempty"`
	Image     *embedImage  `json:"image,omitempty"`
}

type recordPayload struct {
	Content     *string    `json:"content"`
	Embeds      []embed    `json:"embeds"`
	Attachments []struct{} `json:"attachments"`
}

type fallbackPayload struct {
	Content string `json:"content"`
}

// SendRecord delivers one matched record as a single embed
func (c *Client) SendRecord(ctx context.Context, rec domain.FilteredRecord) error {
	e := embed{
		Title: "Product Details",
		Color: c.cfg.EmbedColor,
		Fields: []embedField{
			{Name: "Name", Value: domain.ShortName(rec.Name)},
			{Name: "Description", Value: domain.DescriptionHighlight(rec.Description)},
			{Name: "Grade", Value: rec.Grade, Inline: true},
			{Name: "Color", Value: rec.Color, Inline: true},
			{Name: "Price", Value: fmt.Sprintf("₹%s", rec.Offer.SalePrice), Inline: true},
			{Name: "Buy Now", Value: fmt.Sprintf("[Link](%s)", rec.Offer.URL)},
		},
		Footer:    embedFooter{Text: c.cfg.FooterText},
		Timestamp: c.now().UTC().Format(time.RFC3339),
	}

	if rec.Image != "" {
		if c.cfg.UseThumbnail {
			e.Thumbnail = &embedImage{URL: rec.Image}
		} else {
			e.Image = &embedImage{URL: rec.Image}
		}
	}

	return c.post(ctx, recordPayload{
		Content:     nil,
		Embeds:      []embed{e},
		Attachments: []struct{}{},
	})
}

// SendFallback delivers the single no-match message of a run
func (c *Client) SendFallback(ctx context.Context, productName string, grade domain.Grade) error {
	return c.post(ctx, fallbackPayload{
		Content: fmt.Sprintf("%s is out of stock for %s grade.", productName, grade),
	})
}

func (c *Client) post(ctx context.Context, body interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: discord rate limiter: %v", domain.ErrDispatch, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.cfg.WebhookURL)
	if err != nil {
		return fmt.Errorf("%w: discord webhook: %v", domain.ErrDispatch, err)
	}
	if resp.IsError() {
		log.Printf("[discord] webhook failed: status %d, body %s", resp.StatusCode(), resp.Body())
		return fmt.Errorf("%w: discord webhook: status %d", domain.ErrDispatch, resp.StatusCode())
	}

	return nil
}
