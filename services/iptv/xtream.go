package iptv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fallback Xtream panel used when the caller supplies no stream URL and
// no defaults are configured.
const (
	FallbackDomain   = "http://sinalprivado.info"
	FallbackUsername = "430214"
	FallbackPassword = "430214"
)

const (
	fetchTimeout       = 10 * time.Second
	maxListingBytes    = 10 * 1024 * 1024
	collectorUserAgent = "Mozilla/5.0 (compatible; IPTV-Collector/1.0)"
)

// Credentials is the {domain, username, password} triple needed to build
// playable Xtream stream URLs.
type Credentials struct {
	Domain   string
	Username string
	Password string
}

// EpisodeURL builds the playable stream URL for an IPTV-internal episode id.
func (c Credentials) EpisodeURL(id string) string {
	return fmt.Sprintf("%s/series/%s/%s/%s.mp4", c.Domain, c.Username, c.Password, id)
}

// SeriesInfoURL builds the panel's get_series_info endpoint for a series.
func (c Credentials) SeriesInfoURL(seriesID string) string {
	return fmt.Sprintf("%s/player_api.php?username=%s&password=%s&action=get_series_info&series_id=%s",
		c.Domain, url.QueryEscape(c.Username), url.QueryEscape(c.Password), url.QueryEscape(seriesID))
}

// EpisodeKey is the join key between remote episode metadata and the
// IPTV-internal id map. The match is an exact integer pair.
func EpisodeKey(season, episode int) string {
	return fmt.Sprintf("%d_%d", season, episode)
}

// Linker resolves Xtream credentials from caller-supplied URLs and builds
// the (season, episode) -> internal id map from the panel's own listing.
type Linker struct {
	httpc    *http.Client
	defaults Credentials
}

func NewLinker(httpc *http.Client, defaults Credentials) *Linker {
	if httpc == nil {
		httpc = &http.Client{Timeout: fetchTimeout}
	}
	if defaults.Domain == "" {
		defaults.Domain = FallbackDomain
	}
	if defaults.Username == "" {
		defaults.Username = FallbackUsername
	}
	if defaults.Password == "" {
		defaults.Password = FallbackPassword
	}
	return &Linker{httpc: httpc, defaults: defaults}
}

// Defaults returns the configured fallback credentials.
func (l *Linker) Defaults() Credentials {
	return l.defaults
}

// Credentials parses the domain and username/password out of a
// player_api URL, falling back to the configured defaults for any piece
// that is absent or unparseable.
func (l *Linker) Credentials(streamURL string) Credentials {
	out := l.defaults
	if streamURL == "" {
		return out
	}

	parsed, err := url.Parse(streamURL)
	if err != nil {
		return out
	}
	if parsed.Scheme != "" && parsed.Host != "" {
		out.Domain = parsed.Scheme + "://" + parsed.Host
	}
	query := parsed.Query()
	if username := query.Get("username"); username != "" {
		out.Username = username
	}
	if password := query.Get("password"); password != "" {
		out.Password = password
	}
	return out
}

// listingEpisode mirrors one entry of the panel's episodes object.
// Xtream panels are loose with types (ids and numbers arrive as strings
// or numbers depending on the panel), so fields decode as any.
type listingEpisode struct {
	ID         any `json:"id"`
	Season     any `json:"season"`
	EpisodeNum any `json:"episode_num"`
}

type seriesListing struct {
	Episodes map[string][]listingEpisode `json:"episodes"`
}

// BuildEpisodeMap fetches the panel's series listing and returns the
// "{season}_{episode}" -> internal id map. Entries without an id or with
// a non-positive episode number are skipped. Any fetch or decode failure
// yields an empty map, never an error.
func (l *Linker) BuildEpisodeMap(ctx context.Context, streamURL string) map[string]string {
	episodeMap := make(map[string]string)
	if streamURL == "" {
		return episodeMap
	}

	listing, err := l.fetchListing(ctx, streamURL)
	if err != nil {
		log.Printf("[iptv] episode listing unavailable url=%s: %v", streamURL, err)
		return episodeMap
	}

	for seasonKey, episodes := range listing.Episodes {
		for _, ep := range episodes {
			id := flattenID(ep.ID)
			season := toInt(ep.Season, atoiOrZero(seasonKey))
			episode := toInt(ep.EpisodeNum, 0)
			if id == "" || episode <= 0 {
				continue
			}
			episodeMap[EpisodeKey(season, episode)] = id
		}
	}
	return episodeMap
}

func (l *Linker) fetchListing(ctx context.Context, streamURL string) (*seriesListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", collectorUserAgent)

	resp, err := l.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("listing returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var listing seriesListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return &listing, nil
}

// flattenID renders a panel-supplied id as a string regardless of the
// JSON type it arrived in. Integral floats print without a decimal part.
func flattenID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case float64:
		if id == float64(int64(id)) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}

func toInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	case json.Number:
		if parsed, err := n.Int64(); err == nil {
			return int(parsed)
		}
	}
	return fallback
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
