package telegram

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gradewatch/watcher/internal/domain"
	"golang.org/x/time/rate"
)

// Config holds the settings for one Bot API client
type Config struct {
	BaseURL  string
	BotToken string
	ChatID   string
	// SendPhotos switches per-record messages between the photo-caption and
	// the plain-text variant
	SendPhotos bool
	// PerSecond caps outbound calls; the Bot API throttles around 30/s
	PerSecond float64
}

// Client posts notifications to a Telegram chat. It implements
// domain.NotificationAdapter and domain.AlertSender.
type Client struct {
	http    *resty.Client
	cfg     Config
	limiter *rate.Limiter
}

// NewClient creates a new Telegram Bot API client
func NewClient(cfg Config) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.PerSecond), 5),
	}
}

// Name identifies this adapter in dispatch results and logs
func (c *Client) Name() string {
	return "telegram"
}

type messageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

type photoRequest struct {
	ChatID    string `json:"chat_id"`
	Photo     string `json:"photo"`
	Caption   string `json:"caption"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// SendRecord delivers one matched record, as a photo with caption when
// configured and an image is present, otherwise as a text message
func (c *Client) SendRecord(ctx context.Context, rec domain.FilteredRecord) error {
	text := recordText(rec)

	if c.cfg.SendPhotos && rec.Image != "" {
		return c.post(ctx, "sendPhoto", photoRequest{
			ChatID:    c.cfg.ChatID,
			Photo:     rec.Image,
			Caption:   text,
			ParseMode: "HTML",
		})
	}

	return c.post(ctx, "sendMessage", messageRequest{
		ChatID:                c.cfg.ChatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
}

// SendAlert delivers the extra target-price message for one record,
// mentioning the configured handle
func (c *Client) SendAlert(ctx context.Context, rec domain.FilteredRecord, handle string) error {
	text := fmt.Sprintf(
		"%s price alert: %s is listed at ₹%s for %s grade.\n<b>Buy Now:</b> <a href=\"%s\">link</a>",
		handle, domain.ShortName(rec.Name), rec.Offer.SalePrice, rec.Grade, rec.Offer.URL,
	)

	return c.post(ctx, "sendMessage", messageRequest{
		ChatID:                c.cfg.ChatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
}

// SendFallback delivers the single no-match message of a run
func (c *Client) SendFallback(ctx context.Context, productName string, grade domain.Grade) error {
	return c.post(ctx, "sendMessage", messageRequest{
		ChatID: c.cfg.ChatID,
		Text:   fmt.Sprintf("%s is out of stock for %s grade.", productName, grade),
	})
}

func recordText(rec domain.FilteredRecord) string {
	return fmt.Sprintf(
		"<b>Product Details:</b>\nName: %s\nGrade: %s\nColor: %s\nDescription: %s\nPrice: ₹%s\n<b>Buy Now:</b> <a href=\"%s\">link</a>",
		domain.ShortName(rec.Name), rec.Grade, rec.Color,
		domain.DescriptionHighlight(rec.Description), rec.Offer.SalePrice, rec.Offer.URL,
	)
}

func (c *Client) post(ctx context.Context, method string, body interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: telegram rate limiter: %v", domain.ErrDispatch, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(fmt.Sprintf("%s/bot%s/%s", c.cfg.BaseURL, c.cfg.BotToken, method))
	if err != nil {
		return fmt.Errorf("%w: telegram %s: %v", domain.ErrDispatch, method, err)
	}
	if resp.IsError() {
		log.Printf("[telegram] %s failed: status %d, body %s", method, resp.StatusCode(), resp.Body())
		return fmt.Errorf("%w: telegram %s: status %d", domain.ErrDispatch, method, resp.StatusCode())
	}

	return nil
}
