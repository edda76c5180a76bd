package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"streambridge/models"
	"streambridge/services/metadata"
)

type seriesResolver interface {
	SeriesInfo(ctx context.Context, req metadata.SeriesInfoRequest) (*models.SeriesInfo, error)
}

var _ seriesResolver = (*metadata.Service)(nil)

// SeriesHandler exposes the series enrichment endpoint.
type SeriesHandler struct {
	Service seriesResolver
}

func NewSeriesHandler(s seriesResolver) *SeriesHandler {
	return &SeriesHandler{Service: s}
}

// SeriesInfo resolves a noisy IPTV title to the full enriched payload.
// Required query params: nome, series_id. Optional: category_id,
// iptv_poster, iptv_stream_url.
func (h *SeriesHandler) SeriesInfo(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	nome := strings.TrimSpace(query.Get("nome"))
	seriesID := strings.TrimSpace(query.Get("series_id"))
	if nome == "" || seriesID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Parâmetros obrigatórios ausentes (nome, series_id)",
		})
		return
	}

	req := metadata.SeriesInfoRequest{
		Name:       nome,
		SeriesID:   seriesID,
		CategoryID: strings.TrimSpace(query.Get("category_id")),
		Poster:     strings.TrimSpace(query.Get("iptv_poster")),
		StreamURL:  strings.TrimSpace(query.Get("iptv_stream_url")),
	}

	info, err := h.Service.SeriesInfo(r.Context(), req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *SeriesHandler) writeError(w http.ResponseWriter, req metadata.SeriesInfoRequest, err error) {
	var notFound *metadata.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": "Série não encontrada no TMDb",
			"debug": map[string]string{
				"query_enviada": notFound.Query,
				"query_limpa":   notFound.CleanedQuery,
			},
		})
		return
	}

	if errors.Is(err, metadata.ErrNoBestCandidate) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Não foi possível determinar o melhor resultado no TMDb",
		})
		return
	}

	var upstream *metadata.UpstreamError
	if errors.As(err, &upstream) {
		// The upstream message is passed through verbatim for debugging.
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":      "Falha ao obter detalhes da série no TMDb",
			"tmdb_error": upstream.Err.Error(),
		})
		return
	}

	log.Printf("[series] unexpected error name=%q: %v", req.Name, err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
