package models

// SeriesInfo is the full payload returned by the series enrichment endpoint.
type SeriesInfo struct {
	Serie      Serie     `json:"serie"`
	Temporadas []Season  `json:"temporadas"`
	Episodios  []Episode `json:"episodios"`
}

// Serie carries the resolved series metadata merged with the caller-supplied
// IPTV parameters. Field names follow the wire contract of the API.
type Serie struct {
	IPTVSeriesID     string       `json:"iptv_series_id"`
	IPTVCategoryID   string       `json:"iptv_category_id"`
	IPTVName         string       `json:"iptv_name"`
	IPTVPoster       string       `json:"iptv_poster"`
	TituloUsado      string       `json:"titulo_usado"`
	TMDBID           int64        `json:"tmdb_id"`
	TMDBName         string       `json:"tmdb_name"`
	TMDBFirstAirDate string       `json:"tmdb_first_air_date"`
	TMDBPopularity   float64      `json:"tmdb_popularity"`
	TMDBVoteCount    int          `json:"tmdb_vote_count"`
	Titulo           string       `json:"titulo"`
	TituloOriginal   string       `json:"titulo_original"`
	Sinopse          string       `json:"sinopse"`
	Nota             float64      `json:"nota"`
	Lancamento       string       `json:"lancamento"`
	NumeroTemporadas int          `json:"numero_temporadas"`
	NumeroEpisodios  int          `json:"numero_episodios"`
	Classificacao    string       `json:"classificacao_indicativa"`
	Poster           string       `json:"poster"`
	Backdrop         string       `json:"backdrop"`
	Trailer          string       `json:"trailer"`
	Generos          string       `json:"generos"`
	Elenco           []CastMember `json:"elenco"`
}

// CastMember is one top-billed cast entry.
type CastMember struct {
	Name string `json:"name"`
	Foto string `json:"foto"`
}

// Season is a per-season summary in the final payload.
type Season struct {
	SeasonNumber   int    `json:"season_number"`
	Name           string `json:"name"`
	EpisodiosCount int    `json:"episodios_count"`
	Poster         string `json:"poster"`
}

// Episode is a flattened episode entry. URL is the playable stream URL and
// is empty when no IPTV episode id matched.
type Episode struct {
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
	StillPath     string `json:"still_path"`
	URL           string `json:"url"`
}
