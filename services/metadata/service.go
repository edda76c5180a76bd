package metadata

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"

	"streambridge/models"
	"streambridge/services/iptv"
)

// ErrNoBestCandidate is returned when the search produced results but no
// usable best match could be determined.
var ErrNoBestCandidate = errors.New("não foi possível determinar o melhor resultado no TMDb")

// NotFoundError is returned when every search attempt came back empty.
// It carries both query forms so the caller can echo them for debugging.
type NotFoundError struct {
	Query        string
	CleanedQuery string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("série não encontrada no TMDb (query=%q)", e.Query)
}

// UpstreamError wraps a detail-fetch failure. The upstream message is
// passed through opaque and unparsed.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "falha ao obter detalhes da série no TMDb: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// genreNames maps TMDB TV genre ids to their regional display names,
// used when the detail record carries no genre list of its own.
var genreNames = map[int64]string{
	10759: "Ação & Aventura",
	16:    "Animação",
	35:    "Comédia",
	80:    "Crime",
	99:    "Documentário",
	18:    "Drama",
	10751: "Família",
	10762: "Infantil",
	9648:  "Mistério",
	10763: "Notícias",
	10764: "Reality",
	10765: "Ficção Científica & Fantasia",
	10766: "Soap",
	10767: "Talk",
	10768: "Guerra & Política",
	37:    "Faroeste",
}

// SeriesInfoRequest carries the caller-supplied inputs for one resolution.
type SeriesInfoRequest struct {
	Name       string
	SeriesID   string
	CategoryID string
	Poster     string
	StreamURL  string
}

// Service resolves noisy IPTV titles to full series payloads.
type Service struct {
	tmdb   *tmdbClient
	linker *iptv.Linker
}

// NewService builds a Service against the real TMDB API. baseURL and
// httpc may be empty/nil for production defaults.
func NewService(apiKey, baseURL string, httpc *http.Client, linker *iptv.Linker) *Service {
	if linker == nil {
		linker = iptv.NewLinker(nil, iptv.Credentials{})
	}
	return &Service{
		tmdb:   newTMDBClient(apiKey, baseURL, httpc),
		linker: linker,
	}
}

// SeriesInfo runs the full resolution pipeline: search ladder, candidate
// scoring, detail fetch, parallel season fetch, IPTV episode linking and
// payload assembly.
func (s *Service) SeriesInfo(ctx context.Context, req SeriesInfoRequest) (*models.SeriesInfo, error) {
	results := searchSeries(ctx, s.tmdb, req.Name)
	if len(results) == 0 {
		return nil, &NotFoundError{Query: req.Name, CleanedQuery: CleanQueryTitle(req.Name)}
	}

	yearGuess := GuessYear(req.Name)
	best, ok := bestCandidate(req.Name, results, yearGuess)
	if !ok || best.ID == 0 {
		return nil, ErrNoBestCandidate
	}

	details, err := s.tmdb.seriesDetails(ctx, best.ID)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	streamURL := req.StreamURL
	if streamURL == "" {
		streamURL = s.linker.Defaults().SeriesInfoURL(req.SeriesID)
	}
	creds := s.linker.Credentials(streamURL)
	episodeMap := s.linker.BuildEpisodeMap(ctx, streamURL)

	log.Printf("[metadata] resolved series name=%q tmdbId=%d iptvEpisodes=%d",
		req.Name, details.ID, len(episodeMap))

	info := &models.SeriesInfo{
		Serie:      buildSerie(req, best, details),
		Temporadas: buildSeasons(details.Seasons),
		Episodios:  s.buildEpisodes(details, creds, episodeMap),
	}
	return info, nil
}

func buildSerie(req SeriesInfoRequest, best Candidate, details *seriesDetails) models.Serie {
	overview := details.Overview
	if overview == "" {
		overview = "Descrição não disponível"
	}

	serie := models.Serie{
		IPTVSeriesID:     req.SeriesID,
		IPTVCategoryID:   req.CategoryID,
		IPTVName:         req.Name,
		IPTVPoster:       req.Poster,
		TituloUsado:      req.Name,
		TMDBID:           details.ID,
		TMDBName:         details.Name,
		TMDBFirstAirDate: details.FirstAirDate,
		TMDBPopularity:   details.Popularity,
		TMDBVoteCount:    details.VoteCount,
		Titulo:           details.Name,
		TituloOriginal:   details.OriginalName,
		Sinopse:          overview,
		Nota:             details.VoteAverage,
		Lancamento:       details.FirstAirDate,
		NumeroTemporadas: details.NumberOfSeasons,
		NumeroEpisodios:  details.NumberOfEpisodes,
		Classificacao:    contentRatingFor(details.ContentRatings.Results),
		Poster:           buildImageURL(details.PosterPath, tmdbPosterSize),
		Backdrop:         buildImageURL(details.BackdropPath, tmdbPosterSize),
		Trailer:          trailerURL(details.Videos.Results),
		Generos:          genreList(details, best),
		Elenco:           topCast(details.Credits.Cast),
	}
	return serie
}

// contentRatingFor prefers the BR certification and falls back to the
// first listed one.
func contentRatingFor(ratings []contentRating) string {
	for _, r := range ratings {
		if r.Country == "BR" {
			return r.Rating
		}
	}
	if len(ratings) > 0 {
		return ratings[0].Rating
	}
	return ""
}

// trailerURL picks the first video of type Trailer with a key.
func trailerURL(videos []tmdbVideo) string {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Key != "" {
			return "https://www.youtube.com/watch?v=" + v.Key
		}
	}
	return ""
}

// genreList joins the detail record's genre names. When the record has
// none, the search candidate's genre ids are mapped through the fixed
// fallback table.
func genreList(details *seriesDetails, best Candidate) string {
	genres := details.Genres
	if len(genres) == 0 && len(best.GenreIDs) > 0 {
		for _, id := range best.GenreIDs {
			name, ok := genreNames[id]
			if !ok {
				name = "Desconhecido"
			}
			genres = append(genres, tmdbGenre{ID: id, Name: name})
		}
	}

	joined := ""
	for _, g := range genres {
		if g.Name == "" {
			continue
		}
		if joined != "" {
			joined += ", "
		}
		joined += g.Name
	}
	return joined
}

func topCast(cast []castCredit) []models.CastMember {
	if len(cast) > 10 {
		cast = cast[:10]
	}
	members := make([]models.CastMember, 0, len(cast))
	for _, c := range cast {
		members = append(members, models.CastMember{
			Name: c.Name,
			Foto: buildImageURL(c.ProfilePath, tmdbProfileSize),
		})
	}
	return members
}

func buildSeasons(seasons []seasonSummary) []models.Season {
	out := make([]models.Season, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, models.Season{
			SeasonNumber:   s.SeasonNumber,
			Name:           s.Name,
			EpisodiosCount: s.EpisodeCount,
			Poster:         buildImageURL(s.PosterPath, tmdbPosterSize),
		})
	}
	return out
}

// buildEpisodes fans out the season fetch, joins the IPTV episode map and
// flattens everything into a deterministic (season, episode) ordering.
func (s *Service) buildEpisodes(details *seriesDetails, creds iptv.Credentials, episodeMap map[string]string) []models.Episode {
	seasonData := fetchSeasons(s.tmdb, details.ID, details.Seasons)

	seasonNumbers := make([]int, 0, len(seasonData))
	for seasonNumber := range seasonData {
		seasonNumbers = append(seasonNumbers, seasonNumber)
	}
	sort.Ints(seasonNumbers)

	var episodes []models.Episode
	for _, seasonNumber := range seasonNumbers {
		payload := seasonData[seasonNumber]
		for _, ep := range payload.Episodes {
			playURL := ""
			if id, ok := episodeMap[iptv.EpisodeKey(seasonNumber, ep.EpisodeNumber)]; ok {
				playURL = creds.EpisodeURL(id)
			}
			episodes = append(episodes, models.Episode{
				SeasonNumber:  seasonNumber,
				EpisodeNumber: ep.EpisodeNumber,
				Name:          ep.Name,
				Overview:      ep.Overview,
				AirDate:       ep.AirDate,
				StillPath:     buildImageURL(ep.StillPath, tmdbStillSize),
				URL:           playURL,
			})
		}
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		if episodes[i].SeasonNumber != episodes[j].SeasonNumber {
			return episodes[i].SeasonNumber < episodes[j].SeasonNumber
		}
		return episodes[i].EpisodeNumber < episodes[j].EpisodeNumber
	})
	return episodes
}
