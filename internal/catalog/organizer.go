// Package catalog turns raw panel lists into display-ready groupings.
// Everything here is a pure transformation over catalog snapshots; no
// fetching or persistence happens in this package.
package catalog

import (
	"sort"
	"strings"

	"tvclient/internal/xtream"
)

// Group is one display-ready bucket of streams under a category name.
type Group struct {
	Name     string
	Channels []xtream.Stream
}

// Streams or series referencing a category the panel never declared are
// bucketed under this synthetic category, appended after all named ones.
var fallbackCategory = xtream.Category{ID: "0", Name: "Other"}

// BuildGroups joins categories with streams into ordered groups. Categories
// are ordered by case-insensitive name, group channels likewise. Categories
// with no streams are dropped. Series do not appear inside groups; they only
// influence whether the fallback category is needed.
func BuildGroups(categories []xtream.Category, streams []xtream.Stream, series []xtream.SeriesSummary) []Group {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	buckets := make(map[string][]xtream.Stream)
	orphaned := false

	for _, s := range streams {
		id := s.CategoryID
		if !known[id] {
			id = fallbackCategory.ID
			orphaned = true
		}

		buckets[id] = append(buckets[id], s)
	}

	for _, s := range series {
		if !known[s.CategoryID] {
			orphaned = true
		}
	}

	ordered := make([]xtream.Category, len(categories))
	copy(ordered, categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return strings.ToLower(ordered[i].Name) < strings.ToLower(ordered[j].Name)
	})

	if orphaned {
		ordered = append(ordered, fallbackCategory)
	}

	groups := make([]Group, 0, len(ordered))

	for _, c := range ordered {
		channels := buckets[c.ID]
		if len(channels) == 0 {
			continue
		}

		sortStreams(channels)
		groups = append(groups, Group{Name: c.Name, Channels: channels})
	}

	return groups
}

// SortedSeries returns the series list ordered by case-insensitive name.
// The input slice is not modified.
func SortedSeries(series []xtream.SeriesSummary) []xtream.SeriesSummary {
	out := make([]xtream.SeriesSummary, len(series))
	copy(out, series)
	sortSeries(out)

	return out
}

// SearchStreams returns streams whose name contains the query,
// case-insensitively. An empty query matches everything.
func SearchStreams(streams []xtream.Stream, query string) []xtream.Stream {
	needle := strings.ToLower(query)
	out := make([]xtream.Stream, 0, len(streams))

	for _, s := range streams {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			out = append(out, s)
		}
	}

	return out
}

// SearchSeries is SearchStreams for series stubs.
func SearchSeries(series []xtream.SeriesSummary, query string) []xtream.SeriesSummary {
	needle := strings.ToLower(query)
	out := make([]xtream.SeriesSummary, 0, len(series))

	for _, s := range series {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			out = append(out, s)
		}
	}

	return out
}

// RecentsGroup maps a persisted ordered id list through the current stream
// index, keeping only ids still present in the catalog and preserving the
// persisted order (most recent first).
func RecentsGroup(ids []int, streams []xtream.Stream) Group {
	index := make(map[int]xtream.Stream, len(streams))
	for _, s := range streams {
		index[s.ID] = s
	}

	channels := make([]xtream.Stream, 0, len(ids))

	for _, id := range ids {
		if s, ok := index[id]; ok {
			channels = append(channels, s)
		}
	}

	return Group{Name: "Recently Watched", Channels: channels}
}

func sortStreams(streams []xtream.Stream) {
	sort.SliceStable(streams, func(i, j int) bool {
		return strings.ToLower(streams[i].Name) < strings.ToLower(streams[j].Name)
	})
}

func sortSeries(series []xtream.SeriesSummary) {
	sort.SliceStable(series, func(i, j int) bool {
		return strings.ToLower(series[i].Name) < strings.ToLower(series[j].Name)
	})
}
