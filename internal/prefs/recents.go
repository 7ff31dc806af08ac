package prefs

import (
	"strconv"
	"strings"
)

const (
	recentsKey = "recent_streams"
	maxRecents = 20
)

// RecentIDs returns the persisted recently-watched stream ids, most recent
// first. Entries that do not parse as integers are dropped.
func RecentIDs(s Store) []int {
	raw, ok := s.GetString(recentsKey)
	if !ok || raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))

	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}

		ids = append(ids, id)
	}

	return ids
}

// AddRecent moves id to the front of the recents list, removing any prior
// occurrence and evicting the oldest entry past the cap.
func AddRecent(s Store, id int) {
	ids := []int{id}

	for _, existing := range RecentIDs(s) {
		if existing == id {
			continue
		}

		ids = append(ids, existing)
	}

	if len(ids) > maxRecents {
		ids = ids[:maxRecents]
	}

	parts := make([]string, len(ids))
	for i, v := range ids {
		parts[i] = strconv.Itoa(v)
	}

	s.SetString(recentsKey, strings.Join(parts, ","))
}
