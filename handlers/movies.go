package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"streambridge/models"
)

// movieCatalog is the slice of the catalog service the movie routes need.
type movieCatalog interface {
	All() []models.Movie
	Categories() []string
	ByGenre(genre string) []models.Movie
	ByTitle(term string) []models.Movie
	ByYear(year string) []models.Movie
	FindByTitle(term string) (models.Movie, bool)
	ByID(id int) (models.Movie, bool)
}

// MoviesHandler serves the catalog listing and filter routes.
type MoviesHandler struct {
	Catalog movieCatalog
}

func NewMoviesHandler(c movieCatalog) *MoviesHandler {
	return &MoviesHandler{Catalog: c}
}

// List returns the whole catalog.
func (h *MoviesHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respondMovies(w, h.Catalog.All())
}

// Categories returns the distinct genre list.
func (h *MoviesHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categorias": h.Catalog.Categories()})
}

// ByGenre filters the catalog by genre.
func (h *MoviesHandler) ByGenre(w http.ResponseWriter, r *http.Request) {
	h.respondMovies(w, h.Catalog.ByGenre(mux.Vars(r)["genero"]))
}

// ByTitle filters the catalog by title substring.
func (h *MoviesHandler) ByTitle(w http.ResponseWriter, r *http.Request) {
	h.respondMovies(w, h.Catalog.ByTitle(mux.Vars(r)["titulo"]))
}

// ByYear filters the catalog by release year.
func (h *MoviesHandler) ByYear(w http.ResponseWriter, r *http.Request) {
	h.respondMovies(w, h.Catalog.ByYear(mux.Vars(r)["ano"]))
}

// respondMovies writes the sanitized movie array, or the standard
// not-found body when nothing matched. Stream URLs never leak here.
func (h *MoviesHandler) respondMovies(w http.ResponseWriter, movies []models.Movie) {
	if len(movies) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"mensagem": "Nenhum conteúdo encontrado para a busca informada.",
			"filmes":   []models.Movie{},
		})
		return
	}

	public := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		public = append(public, m.PublicView())
	}
	writeJSON(w, http.StatusOK, public)
}
