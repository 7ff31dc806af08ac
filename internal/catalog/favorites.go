package catalog

import (
	"fmt"

	"tvclient/internal/xtream"
)

// Favorite membership is persisted as a string set of these keys. Streams,
// series, and individual episodes each get their own key shape so one set
// covers all three without collisions.

// StreamKey is the favorite-set key for a live or VOD stream.
func StreamKey(id int) string {
	return fmt.Sprintf("stream_%d", id)
}

// SeriesKey is the favorite-set key for a series.
func SeriesKey(seriesID int) string {
	return fmt.Sprintf("series_%d", seriesID)
}

// EpisodeKey is the favorite-set key for one episode of a series.
func EpisodeKey(seriesID, season int, episodeID string) string {
	return fmt.Sprintf("episode_%d_%d_%s", seriesID, season, episodeID)
}

// FavoriteStreams filters streams down to those whose key is in the
// membership set, sorted by case-insensitive name.
func FavoriteStreams(streams []xtream.Stream, favorites map[string]bool) []xtream.Stream {
	out := make([]xtream.Stream, 0, len(favorites))

	for _, s := range streams {
		if favorites[StreamKey(s.ID)] {
			out = append(out, s)
		}
	}

	sortStreams(out)

	return out
}

// FavoriteSeries filters series down to those whose key is in the
// membership set, sorted by case-insensitive name.
func FavoriteSeries(series []xtream.SeriesSummary, favorites map[string]bool) []xtream.SeriesSummary {
	out := make([]xtream.SeriesSummary, 0, len(favorites))

	for _, s := range series {
		if favorites[SeriesKey(s.SeriesID)] {
			out = append(out, s)
		}
	}

	sortSeries(out)

	return out
}
