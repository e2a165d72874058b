// Package unsplash is a thin client for the Unsplash photo search API,
// used by the editor's image picker. The server proxies searches so the
// access key never reaches the browser.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.unsplash.com"
	defaultPerPage = 12
)

type Client struct {
	accessKey string
	baseURL   string
	http      *http.Client
}

func NewClient(accessKey string) *Client {
	return &Client{
		accessKey: accessKey,
		baseURL:   defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(accessKey, baseURL string) *Client {
	c := NewClient(accessKey)
	c.baseURL = baseURL
	return c
}

// Photo is the subset of the Unsplash photo object the editor needs.
type Photo struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
		Small   string `json:"small"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
}

// Alt returns the best available alt text for the photo.
func (p *Photo) Alt() string {
	if p.AltDescription != "" {
		return p.AltDescription
	}
	if p.Description != "" {
		return p.Description
	}
	return "Unsplash image"
}

// Attribution returns the credit line Unsplash requires.
func (p *Photo) Attribution() string {
	return fmt.Sprintf("Photo by %s on Unsplash", p.User.Name)
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Search queries photos by relevance. page is 1-based.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(defaultPerPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("order_by", "relevant")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request failed: %w", err)
	}
	defer res.Body.Close()

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash error: status %d, body: %s", res.StatusCode, string(bodyBytes))
	}

	var result SearchResult
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &result, nil
}
