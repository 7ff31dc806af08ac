// Package data provides storage and fetching for catalog and EPG data.
package data

import (
	"sync"
	"time"

	"tvclient/internal/catalog"
	"tvclient/internal/epg"
	"tvclient/internal/xtream"
)

// Catalog is one complete catalog snapshot. Snapshots are immutable;
// reloads and series-detail resolution install a fresh snapshot rather
// than mutating a published one.
type Catalog struct {
	Categories []xtream.Category
	Streams    []xtream.Stream
	Series     []xtream.SeriesSummary
	Groups     []catalog.Group

	streamsByID map[int]xtream.Stream
}

// Store provides thread-safe storage for the catalog and the EPG schedule.
// Readers always see either the previous complete snapshot or the new one,
// never a partially-built state.
type Store struct {
	mu sync.RWMutex

	catalog  *Catalog
	schedule *epg.Schedule
	details  map[int]xtream.SeriesDetail
	lastSync time.Time
}

// NewStore creates an empty data store.
func NewStore() *Store {
	return &Store{
		details: make(map[int]xtream.SeriesDetail),
	}
}

// SetCatalog installs a fresh catalog snapshot, replacing the previous one
// wholesale. Resolved series details from earlier generations are dropped
// with it.
func (s *Store) SetCatalog(categories []xtream.Category, streams []xtream.Stream, series []xtream.SeriesSummary, groups []catalog.Group) {
	snapshot := &Catalog{
		Categories:  categories,
		Streams:     streams,
		Series:      series,
		Groups:      groups,
		streamsByID: make(map[int]xtream.Stream, len(streams)),
	}

	for _, stream := range streams {
		snapshot.streamsByID[stream.ID] = stream
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = snapshot
	s.details = make(map[int]xtream.SeriesDetail)
	s.lastSync = time.Now()
}

// GetCatalog returns the current catalog snapshot.
func (s *Store) GetCatalog() (*Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return nil, false
	}

	return s.catalog, true
}

// StreamByID looks a stream up in the current snapshot. Live and VOD ids
// share one index here; a cross-kind collision resolves to whichever entry
// was indexed last.
func (s *Store) StreamByID(id int) (xtream.Stream, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return xtream.Stream{}, false
	}

	stream, ok := s.catalog.streamsByID[id]

	return stream, ok
}

// SetSchedule replaces the EPG schedule unconditionally, including with
// nil after a failed fetch attempt.
func (s *Store) SetSchedule(schedule *epg.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.schedule = schedule
	s.lastSync = time.Now()
}

// GetSchedule returns the current schedule. Absence is the normal
// "no EPG" state, not an error.
func (s *Store) GetSchedule() (*epg.Schedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.schedule == nil {
		return nil, false
	}

	return s.schedule, true
}

// SetSeriesDetail records a resolved series detail, superseding the stub
// with the same id in the series list. Concurrent resolutions of the same
// series are allowed; the last completion wins.
func (s *Store) SetSeriesDetail(detail xtream.SeriesDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.details[detail.SeriesID] = detail

	if s.catalog == nil {
		return
	}

	// Copy-on-write so published snapshots stay immutable.
	updated := *s.catalog
	updated.Series = make([]xtream.SeriesSummary, len(s.catalog.Series))
	copy(updated.Series, s.catalog.Series)

	for i, stub := range updated.Series {
		if stub.SeriesID == detail.SeriesID {
			updated.Series[i] = detail.SeriesSummary
		}
	}

	s.catalog = &updated
}

// SeriesDetail returns a previously resolved series detail.
func (s *Store) SeriesDetail(seriesID int) (xtream.SeriesDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	detail, ok := s.details[seriesID]

	return detail, ok
}

// LastSync returns the last time either the catalog or the schedule was
// replaced.
func (s *Store) LastSync() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastSync
}

// HasData reports whether a catalog snapshot is available. The schedule is
// deliberately not part of this: a client without EPG is degraded, not
// unusable.
func (s *Store) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog != nil
}
