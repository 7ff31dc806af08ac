// Package xtream implements the subset of an Xtream-Codes panel's JSON API
// needed for catalog and EPG retrieval: category, stream, and series
// listings, lazy series detail, and the short-EPG fallback.
package xtream

// Kind classifies what a stream plays as.
type Kind string

const (
	KindLive        Kind = "live"
	KindMovie       Kind = "movie"
	KindSeries      Kind = "series"
	KindUnspecified Kind = ""
)

// Category is one grouping bucket from the panel.
type Category struct {
	ID   string
	Name string
}

// Stream is one playable live channel or VOD title.
//
// ID is unique only within its source list; the panel's live and VOD id
// spaces can collide, so callers must not conflate ids across kinds.
type Stream struct {
	ID                 int
	Name               string
	CategoryID         string
	Kind               Kind
	ContainerExtension string
}

// SeriesSummary is the lightweight stub from the series listing endpoint.
type SeriesSummary struct {
	SeriesID   int
	Name       string
	CategoryID string
}

// SeriesDetail is the fully resolved season/episode structure for one
// series, fetched lazily. It supersedes the stub with the same SeriesID.
type SeriesDetail struct {
	SeriesSummary

	// Seasons maps season number to that season's episodes, ordered by
	// ascending episode number.
	Seasons map[int][]Episode
}

// Episode is one playable episode within a season.
type Episode struct {
	ID                 string
	Num                int
	Title              string
	Season             int
	ContainerExtension string
	Description        string
}

// EPGEntry is one programme from the short-EPG endpoint. Start and End are
// epoch seconds and may be zero when the panel omits them.
type EPGEntry struct {
	Title       string
	Description string
	Start       int64
	End         int64
}
