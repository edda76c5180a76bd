package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
)

// sniffBytes is how much of the upstream body is buffered to detect the
// content type when the upstream omits the header.
const sniffBytes = 3072

type linkSigner interface {
	Sign(id string) (string, error)
	Verify(token string) (string, error)
	TTL() time.Duration
}

// PlayerHandler issues temporary player links and proxies the hidden
// upstream stream behind them.
type PlayerHandler struct {
	Catalog movieCatalog
	Signer  linkSigner
	// BaseURL is the public base for generated links. When empty the
	// request's host is used.
	BaseURL string
	Client  *http.Client
}

func NewPlayerHandler(c movieCatalog, s linkSigner, baseURL string) *PlayerHandler {
	return &PlayerHandler{
		Catalog: c,
		Signer:  s,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 0}, // streaming; no overall deadline
	}
}

// Link issues a time-limited signed player link for the first movie
// matching the title.
func (h *PlayerHandler) Link(w http.ResponseWriter, r *http.Request) {
	titulo := mux.Vars(r)["titulo"]

	movie, ok := h.Catalog.FindByTitle(titulo)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"mensagem": "Nenhum conteúdo encontrado para a busca informada.",
			"filmes":   []string{},
		})
		return
	}

	id := strconv.Itoa(movie.FilmeID)
	token, err := h.Signer.Sign(id)
	if err != nil {
		log.Printf("[player] sign failed movie=%d: %v", movie.FilmeID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"erro": "Falha ao gerar o link temporário."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "sucesso",
		"filme":              movie.Titulo,
		"link_temporario":    fmt.Sprintf("%s/player_proxy/%s?temp_token=%s", h.baseURL(r), id, token),
		"expira_em_segundos": int(h.Signer.TTL().Seconds()),
	})
}

// Proxy validates the temporary token and streams the upstream media
// through, passing Range requests along so players can seek.
func (h *PlayerHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	subject, err := h.Signer.Verify(r.URL.Query().Get("temp_token"))
	if err != nil || subject != id {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"erro": "Acesso negado. O link expirou."})
		return
	}

	movieID, err := strconv.Atoi(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Conteúdo não encontrado."})
		return
	}
	movie, ok := h.Catalog.ByID(movieID)
	if !ok || movie.StreamURL == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Conteúdo não encontrado."})
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, movie.StreamURL, nil)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"erro": "Falha ao contatar a origem do conteúdo."})
		return
	}
	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		log.Printf("[player] upstream fetch failed movie=%d: %v", movieID, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"erro": "Falha ao contatar a origem do conteúdo."})
		return
	}
	defer resp.Body.Close()

	for _, header := range []string{"Content-Length", "Content-Range", "Accept-Ranges"} {
		if value := resp.Header.Get(header); value != "" {
			w.Header().Set(header, value)
		}
	}

	contentType := resp.Header.Get("Content-Type")
	body := io.Reader(resp.Body)
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		// Upstream gave nothing useful; sniff the first chunk.
		head := make([]byte, sniffBytes)
		n, _ := io.ReadFull(resp.Body, head)
		head = head[:n]
		contentType = mimetype.Detect(head).String()
		body = io.MultiReader(strings.NewReader(string(head)), resp.Body)
	}
	w.Header().Set("Content-Type", contentType)

	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, body); err != nil {
		log.Printf("[player] stream interrupted movie=%d: %v", movieID, err)
	}
}

func (h *PlayerHandler) baseURL(r *http.Request) string {
	if h.BaseURL != "" {
		return strings.TrimRight(h.BaseURL, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
