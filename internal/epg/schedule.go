package epg

import "sort"

// Program is one schedule entry for a channel. Start and End are epoch
// seconds; every program accepted into a Schedule satisfies 0 < Start < End.
type Program struct {
	ChannelID   string
	Title       string
	Description string
	Start       int64
	End         int64
}

// Channel identifies one channel declared by the EPG document.
type Channel struct {
	ID          string
	DisplayName string
}

// Schedule is an in-memory index over one XMLTV document. It is built in a
// single ingestion pass and immutable afterwards; reloads produce a fresh
// Schedule that replaces the old one wholesale.
type Schedule struct {
	// programsByChannel holds each channel's programs sorted ascending by
	// start time once ingestion finishes.
	programsByChannel map[string][]Program

	// channelsByName maps a normalized display name or normalized channel id
	// to the set of channel ids registered under it, so lookups succeed
	// whether the caller knows the human label or the EPG's own id string.
	channelsByName map[string]map[string]bool

	channels []Channel
}

func newSchedule() *Schedule {
	return &Schedule{
		programsByChannel: make(map[string][]Program),
		channelsByName:    make(map[string]map[string]bool),
	}
}

// registerChannel indexes a channel id under both its normalized display
// name and its own normalized id.
func (s *Schedule) registerChannel(id, displayName string) {
	s.channels = append(s.channels, Channel{ID: id, DisplayName: displayName})

	for _, key := range []string{Normalize(displayName), Normalize(id)} {
		if key == "" {
			continue
		}

		set, ok := s.channelsByName[key]
		if !ok {
			set = make(map[string]bool)
			s.channelsByName[key] = set
		}

		set[id] = true
	}
}

func (s *Schedule) addProgram(p Program) {
	s.programsByChannel[p.ChannelID] = append(s.programsByChannel[p.ChannelID], p)
}

// finish sorts each channel's program list ascending by start time.
func (s *Schedule) finish() {
	for _, programs := range s.programsByChannel {
		sort.Slice(programs, func(i, j int) bool {
			return programs[i].Start < programs[j].Start
		})
	}
}

// CurrentProgram returns the program airing at now (epoch seconds) on the
// channel whose display name or id matches nameOrID after normalization.
//
// When several channel ids share a normalized name, candidates are consulted
// in map iteration order and the first one with an active program wins, so
// the result is deterministic only up to that order.
func (s *Schedule) CurrentProgram(nameOrID string, now int64) (Program, bool) {
	candidates, ok := s.channelsByName[Normalize(nameOrID)]
	if !ok {
		return Program{}, false
	}

	for id := range candidates {
		for _, p := range s.programsByChannel[id] {
			if p.Start > now {
				break // sorted by start; nothing later can contain now
			}

			if now <= p.End {
				return p, true
			}
		}
	}

	return Program{}, false
}

// CandidateIDs returns the channel ids registered under the normalized form
// of nameOrID. Used by the matcher CLI to explain lookups.
func (s *Schedule) CandidateIDs(nameOrID string) []string {
	set, ok := s.channelsByName[Normalize(nameOrID)]
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// Programs returns the time-sorted program list for a channel id.
func (s *Schedule) Programs(channelID string) []Program {
	return s.programsByChannel[channelID]
}

// Channels returns the channels declared by the document, in document order.
func (s *Schedule) Channels() []Channel {
	return s.channels
}

// ChannelCount returns the number of channels that registered a lookup key.
func (s *Schedule) ChannelCount() int {
	return len(s.channels)
}

// ProgramCount returns the total number of accepted programs.
func (s *Schedule) ProgramCount() int {
	total := 0
	for _, programs := range s.programsByChannel {
		total += len(programs)
	}

	return total
}
