package photocache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// SerializeFunc renders a photo to the string stored in the cache.
type SerializeFunc func(ctx context.Context, p Photo) (string, error)

// Refresh runs one selection cycle: it values photos at now, selects what fits
// in capacityKB, serializes the selection with up to workers goroutines, and
// replaces the contents of cache with the result.
//
// If any serialization fails or ctx is cancelled, the cache is left untouched
// and the error is returned. Photos sharing an id are treated as one photo;
// the last one wins.
func Refresh(ctx context.Context, cache Cache, photos []Photo, now time.Time, capacityKB, workers int, serialize SerializeFunc) ([]Candidate, error) {
	index := make(map[string]int, len(photos))
	unique := make([]Photo, 0, len(photos))
	for _, p := range photos {
		if i, ok := index[p.ID]; ok {
			unique[i] = p
			continue
		}
		index[p.ID] = len(unique)
		unique = append(unique, p)
	}

	selected := Select(Candidates(unique, now), capacityKB)
	entries := make([]Entry, len(selected))

	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := serialize(gctx, unique[index[c.ID]])
			if err != nil {
				return fmt.Errorf("photo %s: %w", c.ID, err)
			}
			entries[i] = Entry{Key: Key(c.ID), Image: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cache refresh aborted: %w", err)
	}

	if err := cache.ClearAndRepopulate(entries); err != nil {
		return nil, err
	}
	return selected, nil
}
