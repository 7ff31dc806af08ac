package epg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_CaseAndBrackets(t *testing.T) {
	require.Equal(t, "fox", Normalize("FOX"))
	require.Equal(t, "fox", Normalize("fox"))
	require.Equal(t, "fox", Normalize("Fox [HD]"))
	require.Equal(t, Normalize("FOX"), Normalize("Fox [HD]"))
}

func TestNormalize_Accents(t *testing.T) {
	require.Equal(t, "telequebec", Normalize("Télé-Québec"))
	require.Equal(t, "canal", Normalize("Canal+"))
	require.Equal(t, "ard munchen", Normalize("ARD München"))
}

func TestNormalize_Whitespace(t *testing.T) {
	require.Equal(t, "bbc one", Normalize("  BBC   One  "))
	require.Equal(t, "bbc one", Normalize("BBC One [UK] [FHD]"))
	require.Equal(t, "", Normalize("[4K]"))
	require.Equal(t, "", Normalize("   "))
}

func TestNormalize_ChannelIDs(t *testing.T) {
	// EPG channel ids are normalized with the same pipeline as display names.
	require.Equal(t, "espnus", Normalize("espn.us"))
	require.Equal(t, "bbc1uk", Normalize("BBC1.uk"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"FOX News [HD]",
		"Télé-Québec",
		"  A&E   USA  ",
		"espn.us",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "not idempotent for %q", in)
	}
}
