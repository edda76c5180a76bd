package metadata

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"streambridge/services/iptv"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

// newTestService wires a Service and its IPTV linker onto a single stub
// transport, so one test can script TMDB and the panel together.
func newTestService(rt roundTripFunc) *Service {
	httpc := &http.Client{Transport: rt}
	linker := iptv.NewLinker(httpc, iptv.Credentials{})
	return NewService("test-key", "http://tmdb.test/3", httpc, linker)
}

func TestSeriesInfoEndToEnd(t *testing.T) {
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		path := req.URL.Path

		switch {
		case path == "/3/search/tv":
			if req.URL.Query().Get("api_key") != "test-key" {
				t.Fatalf("missing api key on %s", req.URL)
			}
			// Two same-named shows; year proximity must pick the 2005 one.
			return jsonResponse(http.StatusOK, `{"results":[
				{"id":202,"name":"The Office","original_name":"The Office","popularity":90,"first_air_date":"2019-07-01"},
				{"id":101,"name":"The Office","original_name":"The Office","popularity":80,"first_air_date":"2005-03-24"}
			]}`), nil

		case path == "/3/tv/101":
			if got := req.URL.Query().Get("append_to_response"); got != "credits,videos,content_ratings" {
				t.Fatalf("unexpected append_to_response: %q", got)
			}
			return jsonResponse(http.StatusOK, `{
				"id":101,"name":"The Office","original_name":"The Office","overview":"Mockumentary.",
				"vote_average":8.6,"vote_count":4000,"popularity":80,"first_air_date":"2005-03-24",
				"number_of_seasons":2,"number_of_episodes":3,
				"poster_path":"/office.jpg","backdrop_path":"/office-bg.jpg",
				"genres":[{"id":35,"name":"Comédia"}],
				"seasons":[
					{"season_number":1,"name":"Temporada 1","episode_count":2,"poster_path":"/s1.jpg"},
					{"season_number":2,"name":"Temporada 2","episode_count":1,"poster_path":""}
				],
				"credits":{"cast":[{"name":"Steve Carell","profile_path":"/carell.jpg"},{"name":"John Krasinski","profile_path":""}]},
				"videos":{"results":[{"type":"Featurette","key":"zzz"},{"type":"Trailer","key":"abc123"}]},
				"content_ratings":{"results":[{"iso_3166_1":"US","rating":"TV-14"},{"iso_3166_1":"BR","rating":"12"}]}
			}`), nil

		case path == "/3/tv/101/season/1":
			return jsonResponse(http.StatusOK, `{"episodes":[
				{"episode_number":2,"name":"Diversity Day","overview":"","air_date":"2005-03-29","still_path":""},
				{"episode_number":1,"name":"Pilot","overview":"First one.","air_date":"2005-03-24","still_path":"/e1.jpg"}
			]}`), nil

		case path == "/3/tv/101/season/2":
			return jsonResponse(http.StatusOK, `{"episodes":[
				{"episode_number":1,"name":"The Dundies","overview":"","air_date":"2005-09-20","still_path":""}
			]}`), nil

		case req.URL.Host == "panel.test" && path == "/player_api.php":
			return jsonResponse(http.StatusOK, `{"episodes":{
				"1":[{"id":111,"episode_num":1,"season":1},{"id":"112","episode_num":"2"}],
				"2":[{"episode_num":1}]
			}}`), nil
		}

		t.Logf("unhandled request: %s %s", req.Method, req.URL)
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})

	info, err := svc.SeriesInfo(context.Background(), SeriesInfoRequest{
		Name:       "The Office US (2005) Dublado",
		SeriesID:   "123",
		CategoryID: "9",
		Poster:     "http://cdn/poster.png",
		StreamURL:  "http://panel.test/player_api.php?username=u&password=p&action=get_series_info&series_id=123",
	})
	if err != nil {
		t.Fatalf("SeriesInfo failed: %v", err)
	}

	serie := info.Serie
	if serie.TMDBID != 101 {
		t.Fatalf("scorer picked the wrong candidate: tmdb_id=%d", serie.TMDBID)
	}
	if serie.TituloUsado != "The Office US (2005) Dublado" || serie.IPTVSeriesID != "123" {
		t.Fatalf("iptv echo fields wrong: %+v", serie)
	}
	if serie.Classificacao != "12" {
		t.Fatalf("expected BR rating preferred, got %q", serie.Classificacao)
	}
	if serie.Trailer != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("unexpected trailer: %q", serie.Trailer)
	}
	if serie.Poster != "https://image.tmdb.org/t/p/w500/office.jpg" {
		t.Fatalf("unexpected poster: %q", serie.Poster)
	}
	if serie.Generos != "Comédia" {
		t.Fatalf("unexpected genres: %q", serie.Generos)
	}
	if len(serie.Elenco) != 2 || serie.Elenco[0].Foto != "https://image.tmdb.org/t/p/w200/carell.jpg" {
		t.Fatalf("unexpected cast: %+v", serie.Elenco)
	}

	if len(info.Temporadas) != 2 || info.Temporadas[0].EpisodiosCount != 2 {
		t.Fatalf("unexpected seasons: %+v", info.Temporadas)
	}

	if len(info.Episodios) != 3 {
		t.Fatalf("expected 3 episodes, got %d", len(info.Episodios))
	}
	// Deterministic (season, episode) ordering regardless of fetch order.
	first, second, third := info.Episodios[0], info.Episodios[1], info.Episodios[2]
	if first.SeasonNumber != 1 || first.EpisodeNumber != 1 || second.EpisodeNumber != 2 || third.SeasonNumber != 2 {
		t.Fatalf("episodes out of order: %+v", info.Episodios)
	}
	if first.URL != "http://panel.test/series/u/p/111.mp4" {
		t.Fatalf("unexpected play url: %q", first.URL)
	}
	if second.URL != "http://panel.test/series/u/p/112.mp4" {
		t.Fatalf("string panel ids must link too, got %q", second.URL)
	}
	if third.URL != "" {
		t.Fatalf("unmatched episode must carry an empty url, got %q", third.URL)
	}
	if first.StillPath != "https://image.tmdb.org/t/p/w300/e1.jpg" {
		t.Fatalf("unexpected still: %q", first.StillPath)
	}
}

func TestSeriesInfoNotFound(t *testing.T) {
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results":[]}`), nil
	})

	_, err := svc.SeriesInfo(context.Background(), SeriesInfoRequest{
		Name:     "Série Inexistente (2010) Dublado",
		SeriesID: "1",
	})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Query != "Série Inexistente (2010) Dublado" {
		t.Fatalf("raw query not echoed: %q", notFound.Query)
	}
	if notFound.CleanedQuery != "Série Inexistente" {
		t.Fatalf("cleaned query not echoed: %q", notFound.CleanedQuery)
	}
}

func TestSeriesInfoDetailFailurePropagatesUpstreamMessage(t *testing.T) {
	svc := newTestService(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/3/search/tv" {
			return jsonResponse(http.StatusOK, `{"results":[{"id":55,"name":"Dark","popularity":10}]}`), nil
		}
		if strings.HasPrefix(req.URL.Path, "/3/tv/55") {
			return jsonResponse(http.StatusInternalServerError, `{"status_message":"Internal error"}`), nil
		}
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})

	_, err := svc.SeriesInfo(context.Background(), SeriesInfoRequest{Name: "Dark", SeriesID: "2"})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !strings.Contains(upstream.Err.Error(), "status 500") {
		t.Fatalf("upstream message must pass through, got %q", upstream.Err.Error())
	}
}
