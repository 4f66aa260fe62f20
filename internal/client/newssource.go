// Package client talks to the News Source service over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bilgisen/newz/internal/models"
	"github.com/go-resty/resty/v2"
)

// ErrNotFound is returned when the source does not exist for that user
var ErrNotFound = errors.New("news source not found")

// NewsSourceClient fetches news sources from the News Source service
type NewsSourceClient struct {
	client  *resty.Client
	baseURL string
}

// NewNewsSourceClient creates a client for the service at baseURL
// (for example http://localhost:8082).
func NewNewsSourceClient(baseURL string, timeout time.Duration) *NewsSourceClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NewsSourceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: resty.New().
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(200 * time.Millisecond).
			SetRetryMaxWaitTime(2 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= http.StatusInternalServerError
			}),
	}
}

// GetNewsSource calls GET /api/v1/newssource/{userId}/{id}.
func (c *NewsSourceClient) GetNewsSource(ctx context.Context, userID string, newsSourceID int) (*models.NewsSource, error) {
	url := c.baseURL + "/api/v1/newssource/{userId}/{id}"

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetPathParams(map[string]string{
			"userId": userID,
			"id":     strconv.Itoa(newsSourceID),
		}).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news source %d: %w", newsSourceID, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode(), resp.Request.URL)
	}

	var source models.NewsSource
	if err := json.Unmarshal(resp.Body(), &source); err != nil {
		return nil, fmt.Errorf("failed to parse news source response: %w", err)
	}
	return &source, nil
}
