// Package tmdb resolves option texts to illustrative backdrop images via
// the TMDB search API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.themoviedb.org"
	imageBase      = "https://image.tmdb.org/t/p/w780"
)

// Media kinds accepted by Resolve.
const (
	KindMovie = "movie"
	KindTV    = "tv"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
}

type searchResponse struct {
	Results []struct {
		BackdropPath string `json:"backdrop_path"`
	} `json:"results"`
}

// Resolve searches for the query and returns the backdrop URL of the first
// result. An empty string with a nil error means no candidate was found,
// which is a valid outcome, not a failure.
func (c *Client) Resolve(ctx context.Context, query, kind string) (string, error) {
	if kind != KindMovie && kind != KindTV {
		return "", fmt.Errorf("tmdb: unknown media kind %q", kind)
	}

	u := fmt.Sprintf("%s/3/search/%s?api_key=%s&query=%s",
		c.baseURL, kind, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tmdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tmdb status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("tmdb decode: %w", err)
	}

	if len(sr.Results) == 0 || sr.Results[0].BackdropPath == "" {
		return "", nil
	}
	return imageBase + sr.Results[0].BackdropPath, nil
}
