// Package tmdb is a minimal client for The Movie Database HTTP API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/loomworks/loomai/internal/domain"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// Movie is a TMDB movie record, trimmed to the fields we use.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
	Genres      []Genre `json:"genres,omitempty"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type searchResponse struct {
	Results []Movie `json:"results"`
}

// Client calls the TMDB REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the API base URL (for testing).
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "tmdb request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.NewDomainError(domain.ErrCodeUpstream, fmt.Sprintf("tmdb returned status %d", resp.StatusCode))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// SearchMovie returns movies matching the query.
func (c *Client) SearchMovie(ctx context.Context, query string) ([]Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")

	var resp searchResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetMovie fetches full details for a movie, including genres.
func (c *Client) GetMovie(ctx context.Context, id int) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetRecommendations returns TMDB's recommendations for a movie.
func (c *Client) GetRecommendations(ctx context.Context, id int) ([]Movie, error) {
	params := url.Values{}
	params.Set("page", "1")

	var resp searchResponse
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id)+"/recommendations", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Year extracts the release year, zero when unknown.
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
