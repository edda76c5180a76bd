package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultTMDBBaseURL = "https://api.themoviedb.org/3"
	tmdbImageBaseURL   = "https://image.tmdb.org/t/p/"

	tmdbPosterSize  = "w500"
	tmdbStillSize   = "w300"
	tmdbProfileSize = "w200"

	connectTimeout   = 5 * time.Second
	requestTimeout   = 10 * time.Second
	maxResponseBytes = 10 * 1024 * 1024

	collectorUserAgent = "Mozilla/5.0 (compatible; IPTV-Collector/1.0)"

	// detailLanguage pins detail and season fetches to the regional catalog.
	detailLanguage = "pt-BR"
)

// Candidate is one remote search result for a title query.
type Candidate struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	Popularity   float64 `json:"popularity"`
	FirstAirDate string  `json:"first_air_date"`
	GenreIDs     []int64 `json:"genre_ids"`
}

type searchResponse struct {
	Results []Candidate `json:"results"`
}

type tmdbGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type seasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	PosterPath   string `json:"poster_path"`
}

type castCredit struct {
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path"`
}

type tmdbVideo struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

type contentRating struct {
	Country string `json:"iso_3166_1"`
	Rating  string `json:"rating"`
}

type seriesDetails struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	OriginalName     string          `json:"original_name"`
	Overview         string          `json:"overview"`
	VoteAverage      float64         `json:"vote_average"`
	VoteCount        int             `json:"vote_count"`
	Popularity       float64         `json:"popularity"`
	FirstAirDate     string          `json:"first_air_date"`
	NumberOfSeasons  int             `json:"number_of_seasons"`
	NumberOfEpisodes int             `json:"number_of_episodes"`
	PosterPath       string          `json:"poster_path"`
	BackdropPath     string          `json:"backdrop_path"`
	Genres           []tmdbGenre     `json:"genres"`
	Seasons          []seasonSummary `json:"seasons"`
	Credits          struct {
		Cast []castCredit `json:"cast"`
	} `json:"credits"`
	Videos struct {
		Results []tmdbVideo `json:"results"`
	} `json:"videos"`
	ContentRatings struct {
		Results []contentRating `json:"results"`
	} `json:"content_ratings"`
}

type episodeDetail struct {
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
	StillPath     string `json:"still_path"`
}

type seasonPayload struct {
	Episodes []episodeDetail `json:"episodes"`
}

// tmdbClient is a thin HTTP client for the TMDB v3 API. The http.Client
// is injected so tests can stub the transport.
type tmdbClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func newTMDBClient(apiKey, baseURL string, httpc *http.Client) *tmdbClient {
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		}
	}
	return &tmdbClient{apiKey: apiKey, baseURL: baseURL, httpc: httpc}
}

// searchTV queries /search/tv with the given language, optionally filtered
// by first air date year (year <= 0 means no filter).
func (c *tmdbClient) searchTV(ctx context.Context, query, language string, year int) (searchResponse, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", language)
	params.Set("query", query)
	if year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}

	var resp searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/search/tv?"+params.Encode(), &resp); err != nil {
		return searchResponse{}, err
	}
	return resp, nil
}

// seriesDetails fetches the full record for a series, including credits,
// videos and content ratings in a single call.
func (c *tmdbClient) seriesDetails(ctx context.Context, id int64) (*seriesDetails, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", detailLanguage)
	params.Set("append_to_response", "credits,videos,content_ratings")

	var details seriesDetails
	endpoint := fmt.Sprintf("%s/tv/%d?%s", c.baseURL, id, params.Encode())
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// seasonDetails fetches the episode listing for one season.
func (c *tmdbClient) seasonDetails(ctx context.Context, id int64, seasonNumber int) (*seasonPayload, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", detailLanguage)

	var payload seasonPayload
	endpoint := fmt.Sprintf("%s/tv/%d/season/%d?%s", c.baseURL, id, seasonNumber, params.Encode())
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *tmdbClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", collectorUserAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("tmdb returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// buildImageURL joins a TMDB image path with the CDN base, returning ""
// for an empty path.
func buildImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return tmdbImageBaseURL + size + path
}
