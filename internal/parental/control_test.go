package parental

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tvclient/internal/prefs"
)

func TestEnabled(t *testing.T) {
	c := New(prefs.NewMemory())

	require.False(t, c.IsEnabled())

	c.SetEnabled(true)
	require.True(t, c.IsEnabled())

	c.SetEnabled(false)
	require.False(t, c.IsEnabled())
}

func TestPIN(t *testing.T) {
	c := New(prefs.NewMemory())

	require.False(t, c.HasPIN())
	require.False(t, c.ValidatePIN("1234"))
	require.False(t, c.ValidatePIN(""))

	c.SetPIN("1234")
	require.True(t, c.HasPIN())
	require.True(t, c.ValidatePIN("1234"))
	require.False(t, c.ValidatePIN("0000"))

	c.SetPIN("")
	require.False(t, c.HasPIN())
	require.False(t, c.ValidatePIN("1234"))
}

func TestRestrictedCategories(t *testing.T) {
	c := New(prefs.NewMemory())

	c.AddRestrictedCategory("18")
	c.AddRestrictedCategory("21")
	require.Equal(t, map[string]bool{"18": true, "21": true}, c.RestrictedCategories())

	// Restriction only bites while parental control is enabled.
	require.False(t, c.IsCategoryRestricted("18"))

	c.SetEnabled(true)
	require.True(t, c.IsCategoryRestricted("18"))
	require.False(t, c.IsCategoryRestricted("7"))

	c.RemoveRestrictedCategory("18")
	require.False(t, c.IsCategoryRestricted("18"))
	require.True(t, c.IsCategoryRestricted("21"))

	c.ClearAllRestrictions()
	require.Empty(t, c.RestrictedCategories())
	require.False(t, c.IsCategoryRestricted("21"))
}

func TestSurvivesReopen(t *testing.T) {
	store := prefs.NewMemory()
	c := New(store)

	c.SetEnabled(true)
	c.SetPIN("4321")
	c.AddRestrictedCategory("18")

	// A second Control over the same store sees identical state.
	other := New(store)
	require.True(t, other.IsEnabled())
	require.True(t, other.ValidatePIN("4321"))
	require.True(t, other.IsCategoryRestricted("18"))
}
