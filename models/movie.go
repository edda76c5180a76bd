package models

// Movie is one catalog record. StreamURL is the hidden upstream media
// location; it is loaded from the catalog file but must never be exposed
// on the listing routes.
type Movie struct {
	FilmeID       int    `json:"filme_id"`
	Titulo        string `json:"titulo"`
	Ano           string `json:"ano"`
	Classificacao string `json:"classificacao"`
	Duracao       string `json:"duracao"`
	Generos       string `json:"generos"`
	URLCapa       string `json:"url_capa"`
	Views         string `json:"views"`
	StreamURL     string `json:"url,omitempty"`
}

// PublicView returns a copy safe for API consumers, with the upstream
// stream URL stripped.
func (m Movie) PublicView() Movie {
	m.StreamURL = ""
	return m
}
