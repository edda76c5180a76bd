package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"streambridge/models"
	"streambridge/services/metadata"
)

// Service serves the movie catalog from a static JSON file. The catalog
// is loaded once at startup and kept in memory; Reload re-reads the file
// on demand.
type Service struct {
	fs   afero.Fs
	path string

	mu     sync.RWMutex
	movies []models.Movie
}

// NewService loads the catalog file and returns a ready service.
func NewService(fs afero.Fs, path string) (*Service, error) {
	svc := &Service{fs: fs, path: path}
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

// Reload re-reads the catalog file, replacing the in-memory set.
func (s *Service) Reload() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	var movies []models.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	s.mu.Lock()
	s.movies = movies
	s.mu.Unlock()

	log.Printf("[catalog] loaded %d movies from %s", len(movies), s.path)
	return nil
}

// All returns every catalog record.
func (s *Service) All() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Movie, len(s.movies))
	copy(out, s.movies)
	return out
}

// Categories returns the sorted distinct genre names across the catalog.
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]string)
	for _, m := range s.movies {
		for _, genre := range strings.Split(m.Generos, ",") {
			genre = strings.TrimSpace(genre)
			if genre == "" {
				continue
			}
			seen[metadata.NormalizeTitle(genre)] = genre
		}
	}

	categories := make([]string, 0, len(seen))
	for _, genre := range seen {
		categories = append(categories, genre)
	}
	sort.Strings(categories)
	return categories
}

// ByGenre filters movies whose genre list contains the given genre,
// compared accent- and case-insensitively.
func (s *Service) ByGenre(genre string) []models.Movie {
	want := metadata.NormalizeTitle(genre)
	if want == "" {
		return nil
	}
	return s.filter(func(m models.Movie) bool {
		return strings.Contains(metadata.NormalizeTitle(m.Generos), want)
	})
}

// ByTitle filters movies whose title contains the given term, compared
// accent- and case-insensitively.
func (s *Service) ByTitle(term string) []models.Movie {
	want := metadata.NormalizeTitle(term)
	if want == "" {
		return nil
	}
	return s.filter(func(m models.Movie) bool {
		return strings.Contains(metadata.NormalizeTitle(m.Titulo), want)
	})
}

// ByYear filters movies by exact release year.
func (s *Service) ByYear(year string) []models.Movie {
	year = strings.TrimSpace(year)
	if year == "" {
		return nil
	}
	return s.filter(func(m models.Movie) bool {
		return strings.TrimSpace(m.Ano) == year
	})
}

// FindByTitle returns the first movie matching the term, in catalog order.
func (s *Service) FindByTitle(term string) (models.Movie, bool) {
	matches := s.ByTitle(term)
	if len(matches) == 0 {
		return models.Movie{}, false
	}
	return matches[0], true
}

// ByID returns the movie with the given catalog id.
func (s *Service) ByID(id int) (models.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if m.FilmeID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

func (s *Service) filter(keep func(models.Movie) bool) []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Movie
	for _, m := range s.movies {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
