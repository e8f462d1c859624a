package snapshot

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"hotel-optimizer-go/internal/aggregator"
	"hotel-optimizer-go/internal/candidates"
	"hotel-optimizer-go/internal/dataset"
	"hotel-optimizer-go/internal/forecast"
	"hotel-optimizer-go/internal/logger"
	"hotel-optimizer-go/internal/types"
)

// Snapshot is everything derived from one load of the record source:
// prepared candidates, the four aggregation tables and the ADR series.
// Immutable after Build; safe to share across any number of readers.
type Snapshot struct {
	Candidates     []types.Candidate
	Cities         []string
	Tables         aggregator.Tables
	Series         []forecast.SeriesPoint
	BookingCount   int
	ReviewCount    int
	ModalHotelType string
	BuiltAt        time.Time
}

// Build loads the source and derives a complete snapshot.
func Build(src dataset.Source) (*Snapshot, error) {
	log := logger.Component("snapshot")

	ds, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("record source: %w", err)
	}

	s := &Snapshot{
		Candidates:     candidates.Prepare(ds.Offerings, ds.Reviews),
		Tables:         aggregator.Build(ds.Bookings),
		Series:         forecast.BuildSeries(ds.Bookings),
		BookingCount:   len(ds.Bookings),
		ReviewCount:    len(ds.Reviews),
		ModalHotelType: modalHotelType(ds.Bookings),
		BuiltAt:        time.Now().UTC(),
	}
	s.Cities = distinctCities(s.Candidates)

	log.WithFields(map[string]interface{}{
		"candidates": len(s.Candidates),
		"bookings":   s.BookingCount,
		"cities":     len(s.Cities),
		"dates":      len(s.Series),
	}).Info("snapshot built")
	return s, nil
}

func distinctCities(cands []types.Candidate) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range cands {
		if c.City != "" && !seen[c.City] {
			seen[c.City] = true
			out = append(out, c.City)
		}
	}
	sort.Strings(out)
	return out
}

func modalHotelType(bookings []types.BookingRecord) string {
	counts := map[string]int{}
	for _, b := range bookings {
		if b.Hotel != "" {
			counts[b.Hotel]++
		}
	}
	best, bestN := "", 0
	for h, n := range counts {
		if n > bestN || (n == bestN && h < best) {
			best, bestN = h, n
		}
	}
	return best
}

// Store publishes the current snapshot. Reload builds a full replacement
// before swapping it in, so readers never observe a half-rebuilt table.
type Store struct {
	cur atomic.Pointer[Snapshot]
}

func NewStore(s *Snapshot) *Store {
	st := &Store{}
	st.cur.Store(s)
	return st
}

// Current returns the active snapshot. The returned value must be treated
// as read-only.
func (st *Store) Current() *Snapshot {
	return st.cur.Load()
}

// Reload rebuilds from the source, retrying transient load failures with
// exponential backoff, and atomically swaps the new snapshot in. The old
// snapshot stays active until the replacement is complete.
func (st *Store) Reload(src dataset.Source) (*Snapshot, error) {
	log := logger.Component("snapshot")

	var next *Snapshot
	op := func() error {
		s, err := Build(src)
		if err != nil {
			log.WithError(err).Warn("snapshot rebuild failed, retrying")
			return err
		}
		next = s
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(op, bo); err != nil {
		return nil, fmt.Errorf("reload: %w", err)
	}

	st.cur.Store(next)
	log.WithField("built_at", next.BuiltAt).Info("snapshot swapped")
	return next, nil
}
