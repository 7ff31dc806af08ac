package player

// GuideMode is the on-screen guide overlay state. Transitions are explicit:
// Hidden -> Loading when guide data is requested, Loading -> ShowingProgram
// or ShowingEpisode when data arrives, anything -> Hidden on dismissal or
// when nothing was found.
type GuideMode int

const (
	GuideHidden GuideMode = iota
	GuideLoading
	GuideShowingProgram
	GuideShowingEpisode
)

func (m GuideMode) String() string {
	switch m {
	case GuideHidden:
		return "hidden"
	case GuideLoading:
		return "loading"
	case GuideShowingProgram:
		return "program"
	case GuideShowingEpisode:
		return "episode"
	default:
		return "unknown"
	}
}

// Guide tracks the overlay state machine. Invalid transitions are rejected
// rather than applied, so a stale callback cannot drag the overlay into an
// inconsistent state.
type Guide struct {
	mode GuideMode
}

// Mode returns the current overlay state.
func (g *Guide) Mode() GuideMode {
	return g.mode
}

// BeginLoading moves Hidden to Loading. Reports whether the transition
// applied.
func (g *Guide) BeginLoading() bool {
	if g.mode != GuideHidden {
		return false
	}

	g.mode = GuideLoading

	return true
}

// ShowProgram moves Loading to ShowingProgram.
func (g *Guide) ShowProgram() bool {
	if g.mode != GuideLoading {
		return false
	}

	g.mode = GuideShowingProgram

	return true
}

// ShowEpisode moves Loading to ShowingEpisode (episode-resume info for a
// series instead of a live program).
func (g *Guide) ShowEpisode() bool {
	if g.mode != GuideLoading {
		return false
	}

	g.mode = GuideShowingEpisode

	return true
}

// Hide dismisses the overlay from any state.
func (g *Guide) Hide() {
	g.mode = GuideHidden
}
