package main

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"streambridge/api"
	"streambridge/config"
	"streambridge/handlers"
	"streambridge/internal/auth"
	"streambridge/services/catalog"
	"streambridge/services/iptv"
	"streambridge/services/metadata"
	"streambridge/utils"
)

func main() {
	settings := config.Load()

	if settings.LogPath != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   settings.LogPath,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		}))
	}

	if settings.TMDBAPIKey == "" {
		log.Fatal("[main] TMDB_API_KEY is required")
	}

	secret := settings.TempLinkSecret
	if secret == "" {
		// Random per-process secret; temp links then die with the process.
		buf := make([]byte, 32)
		rand.Read(buf)
		secret = base64.StdEncoding.EncodeToString(buf)
		log.Printf("[main] TEMP_LINK_SECRET not set, generated an ephemeral one")
	}

	fs := afero.NewOsFs()

	catalogSvc, err := catalog.NewService(fs, settings.CatalogPath)
	if err != nil {
		log.Fatalf("[main] load catalog: %v", err)
	}
	tokenStore, err := catalog.NewTokenStore(fs, settings.TokensPath)
	if err != nil {
		log.Fatalf("[main] load api tokens: %v", err)
	}

	linker := iptv.NewLinker(nil, iptv.Credentials{
		Domain:   settings.XtreamDomain,
		Username: settings.XtreamUsername,
		Password: settings.XtreamPassword,
	})
	metadataSvc := metadata.NewService(settings.TMDBAPIKey, settings.TMDBBaseURL, nil, linker)

	signer := auth.NewSigner(secret, settings.TempLinkTTL)

	seriesHandler := handlers.NewSeriesHandler(metadataSvc)
	moviesHandler := handlers.NewMoviesHandler(catalogSvc)
	playerHandler := handlers.NewPlayerHandler(catalogSvc, signer, settings.PublicBaseURL)

	router := utils.NewRouter()

	// Open routes
	router.HandleFunc("/docs", handlers.Docs).Methods(http.MethodGet)
	router.HandleFunc("/player_proxy/{id}", playerHandler.Proxy).Methods(http.MethodGet)

	// Token-gated routes
	protected := router.NewRoute().Subrouter()
	protected.Use(api.APITokenMiddleware(tokenStore))
	protected.HandleFunc("/", moviesHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/categorias", moviesHandler.Categories).Methods(http.MethodGet)
	protected.HandleFunc("/genero/{genero}", moviesHandler.ByGenre).Methods(http.MethodGet)
	protected.HandleFunc("/titulo/{titulo}/player", playerHandler.Link).Methods(http.MethodGet)
	protected.HandleFunc("/titulo/{titulo}", moviesHandler.ByTitle).Methods(http.MethodGet)
	protected.HandleFunc("/ano/{ano}", moviesHandler.ByYear).Methods(http.MethodGet)
	protected.HandleFunc("/series_info", seriesHandler.SeriesInfo).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         settings.ListenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // streaming proxy responses have no deadline
	}

	log.Printf("[main] listening on %s", settings.ListenAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[main] server error: %v", err)
	}
}
