package metadata

import (
	"context"
	"log"
	"strings"
)

// Search attempt languages: the regional catalog is tried first, the
// international one second, at every rung of the ladder.
const (
	langRegional      = "pt-BR"
	langInternational = "en-US"
)

type tvSearcher interface {
	searchTV(ctx context.Context, query, language string, year int) (searchResponse, error)
}

type searchAttempt struct {
	query    string
	language string
	year     int
}

// searchSeries runs the fixed attempt ladder against the search API and
// returns the first non-empty result set. The ladder is:
//
//  1. raw title, regional, year filter (when a year was guessed)
//  2. raw title, international, year filter
//  3. cleaned title, regional, year filter      (only if cleaned != raw)
//  4. cleaned title, international, year filter (only if cleaned != raw)
//  5. cleaned title, regional, no year filter   (only if a year was guessed)
//  6. cleaned title, international, no year filter
//
// A failed attempt (transport error, non-2xx, malformed body) counts as
// empty and the ladder moves on. If every attempt comes back empty the
// result of the last attempt is returned, which may be empty.
func searchSeries(ctx context.Context, client tvSearcher, rawTitle string) []Candidate {
	if strings.TrimSpace(rawTitle) == "" {
		return nil
	}

	cleaned := CleanQueryTitle(rawTitle)
	yearGuess := GuessYear(rawTitle)

	attempts := []searchAttempt{
		{rawTitle, langRegional, yearGuess},
		{rawTitle, langInternational, yearGuess},
	}
	if cleaned != rawTitle {
		attempts = append(attempts,
			searchAttempt{cleaned, langRegional, yearGuess},
			searchAttempt{cleaned, langInternational, yearGuess},
		)
	}
	if yearGuess > 0 {
		attempts = append(attempts,
			searchAttempt{cleaned, langRegional, 0},
			searchAttempt{cleaned, langInternational, 0},
		)
	}

	var last []Candidate
	for _, attempt := range attempts {
		resp, err := client.searchTV(ctx, attempt.query, attempt.language, attempt.year)
		if err != nil {
			log.Printf("[metadata] search attempt failed query=%q lang=%s year=%d: %v",
				attempt.query, attempt.language, attempt.year, err)
			last = nil
			continue
		}
		if len(resp.Results) > 0 {
			return resp.Results
		}
		last = resp.Results
	}
	return last
}
