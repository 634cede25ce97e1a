package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gradewatch/watcher/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRecord = domain.FilteredRecord{
	Image:       "https://img.example.com/1.jpg",
	Name:        "Apple iPhone 13 -128 GB -Superb",
	Description: "refurbished,unlocked,6.1 inch display",
	Color:       "Midnight",
	Grade:       "Superb",
	Offer: domain.OfferSummary{
		URL:       "https://shop.example.com/p/1",
		SalePrice: "31999",
	},
}

type webhookBody struct {
	Content *string `json:"content"`
	Embeds  []struct {
		Title  string `json:"title"`
		Color  int    `json:"color"`
		Fields []struct {
			Name   string `json:"name"`
			Value  string `json:"value"`
			Inline bool   `json:"inline"`
		} `json:"fields"`
		Footer struct {
			Text string `json:"text"`
		} `json:"footer"`
		Timestamp string `json:"timestamp"`
		Thumbnail *struct {
			URL string `json:"url"`
		} `json:"thumbnail"`
		Image *struct {
			URL string `json:"url"`
		} `json:"image"`
	} `json:"embeds"`
}

func newWebhookServer(t *testing.T, bodies *[]webhookBody) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body webhookBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*bodies = append(*bodies, body)
		w.WriteHeader(http.StatusNoContent)
	}))
}

func newTestClient(webhookURL string, useThumbnail bool) *Client {
	return NewClient(Config{
		WebhookURL:   webhookURL,
		UseThumbnail: useThumbnail,
		EmbedColor:   4245430,
		FooterText:   "Cashify",
		PerSecond:    100,
	})
}

func TestSendRecord_EmbedShape(t *testing.T) {
	var bodies []webhookBody
	server := newWebhookServer(t, &bodies)
	defer server.Close()

	client := newTestClient(server.URL, true)
	client.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}

	err := client.SendRecord(context.Background(), sampleRecord)

	require.NoError(t, err)
	require.Len(t, bodies, 1)
	assert.Nil(t, bodies[0].Content)
	require.Len(t, bodies[0].Embeds, 1)

	e := bodies[0].Embeds[0]
	assert.Equal(t, "Product Details", e.Title)
	assert.Equal(t, 4245430, e.Color)
	assert.Equal(t, "Cashify", e.Footer.Text)
	assert.Equal(t, "2026-03-14T09:26:53Z", e.Timestamp)

	require.Len(t, e.Fields, 6)
	assert.Equal(t, "Name", e.Fields[0].Name)
	assert.Equal(t, "Apple iPhone 13 ", e.Fields[0].Value)
	assert.Equal(t, "Description", e.Fields[1].Name)
	assert.Equal(t, "6.1 inch display", e.Fields[1].Value)
	assert.Equal(t, "Grade", e.Fields[2].Name)
	assert.Equal(t, "Superb", e.Fields[2].Value)
	assert.True(t, e.Fields[2].Inline)
	assert.Equal(t, "Color", e.Fields[3].Name)
	assert.Equal(t, "Midnight", e.Fields[3].Value)
	assert.True(t, e.Fields[3].Inline)
	assert.Equal(t, "Price", e.Fields[4].Name)
	assert.Equal(t, "₹31999", e.Fields[4].Value)
	assert.True(t, e.Fields[4].Inline)
	assert.Equal(t, "Buy Now", e.Fields[5].Name)
	assert.Equal(t, "[Link](https://shop.example.com/p/1)", e.Fields[5].Value)

	require.NotNil(t, e.Thumbnail)
	assert.Equal(t, "https://img.example.com/1.jpg", e.Thumbnail.URL)
	assert.Nil(t, e.Image)
}

func TestSendRecord_FullImageVariant(t *testing.T) {
	var bodies []webhookBody
	server := newWebhookServer(t, &bodies)
	defer server.Close()

	client := newTestClient(server.URL, false)

	err := client.SendRecord(context.Background(), sampleRecord)

	require.NoError(t, err)
	require.Len(t, bodies, 1)
	require.Len(t, bodies[0].Embeds, 1)
	assert.Nil(t, bodies[0].Embeds[0].Thumbnail)
	require.NotNil(t, bodies[0].Embeds[0].Image)
	assert.Equal(t, "https://img.example.com/1.jpg", bodies[0].Embeds[0].Image.URL)
}

func TestSendRecord_TimestampIsRFC3339(t *testing.T) {
	var bodies []webhookBody
	server := newWebhookServer(t, &bodies)
	defer server.Close()

	client := newTestClient(server.URL, true)

	err := client.SendRecord(context.Background(), sampleRecord)

	require.NoError(t, err)
	require.Len(t, bodies, 1)
	_, parseErr := time.Parse(time.RFC3339, bodies[0].Embeds[0].Timestamp)
	assert.NoError(t, parseErr)
}

func TestSendFallback(t *testing.T) {
	var bodies []webhookBody
	server := newWebhookServer(t, &bodies)
	defer server.Close()

	client := newTestClient(server.URL, true)

	err := client.SendFallback(context.Background(), "Apple iPhone 13 ", domain.GradeSuperb)

	require.NoError(t, err)
	require.Len(t, bodies, 1)
	require.NotNil(t, bodies[0].Content)
	assert.Equal(t, "Apple iPhone 13  is out of stock for Superb grade.", *bodies[0].Content)
	assert.Empty(t, bodies[0].Embeds)
}

func TestSend_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL, true)

	err := client.SendRecord(context.Background(), sampleRecord)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDispatch)
}
