package metadata

import (
	"context"
	"log"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// seasonFetchWorkers caps concurrent outbound season requests.
const seasonFetchWorkers = 5

type seasonFetcher interface {
	seasonDetails(ctx context.Context, id int64, seasonNumber int) (*seasonPayload, error)
}

// fetchSeasons retrieves the episode listing for every season with a
// positive season number, fanning out over a bounded worker pool and
// joining unconditionally. Each task carries its own timeout and failed
// tasks are dropped: their season is simply absent from the result map.
// Tasks run on a background context so an inbound client disconnect does
// not cancel work already in flight.
func fetchSeasons(client seasonFetcher, id int64, seasons []seasonSummary) map[int]*seasonPayload {
	results := make(map[int]*seasonPayload, len(seasons))
	var mu sync.Mutex

	workers := pool.New().WithMaxGoroutines(seasonFetchWorkers)
	for _, season := range seasons {
		seasonNumber := season.SeasonNumber
		if seasonNumber <= 0 {
			continue
		}
		workers.Go(func() {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			payload, err := client.seasonDetails(ctx, id, seasonNumber)
			if err != nil {
				log.Printf("[metadata] season fetch failed series=%d season=%d: %v", id, seasonNumber, err)
				return
			}

			mu.Lock()
			results[seasonNumber] = payload
			mu.Unlock()
		})
	}
	workers.Wait()

	return results
}
