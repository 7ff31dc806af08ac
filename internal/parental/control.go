// Package parental gates restricted catalog categories behind a PIN.
// All state lives in the preferences store; this package only adds the
// key schema and the checks around it.
package parental

import "tvclient/internal/prefs"

const (
	keyEnabled    = "parental_control_enabled"
	keyPIN        = "parental_control_pin"
	keyRestricted = "parental_control_restricted_categories"
)

// Control wraps a preferences store with parental-control semantics.
type Control struct {
	store prefs.Store
}

// New creates a Control over the given store.
func New(store prefs.Store) *Control {
	return &Control{store: store}
}

// IsEnabled reports whether parental control is switched on.
func (c *Control) IsEnabled() bool {
	v, _ := c.store.GetString(keyEnabled)

	return v == "true"
}

// SetEnabled switches parental control on or off.
func (c *Control) SetEnabled(enabled bool) {
	if enabled {
		c.store.SetString(keyEnabled, "true")
	} else {
		c.store.SetString(keyEnabled, "false")
	}
}

// HasPIN reports whether a PIN has been configured.
func (c *Control) HasPIN() bool {
	v, ok := c.store.GetString(keyPIN)

	return ok && v != ""
}

// SetPIN stores the PIN. An empty PIN removes it.
func (c *Control) SetPIN(pin string) {
	if pin == "" {
		c.store.Remove(keyPIN)

		return
	}

	c.store.SetString(keyPIN, pin)
}

// ValidatePIN reports whether the given PIN matches the stored one. With no
// PIN configured, nothing validates.
func (c *Control) ValidatePIN(pin string) bool {
	stored, ok := c.store.GetString(keyPIN)

	return ok && stored != "" && stored == pin
}

// AddRestrictedCategory marks a category id as restricted.
func (c *Control) AddRestrictedCategory(categoryID string) {
	set := c.store.GetStringSet(keyRestricted)
	set[categoryID] = true
	c.store.SetStringSet(keyRestricted, set)
}

// RemoveRestrictedCategory clears the restriction on a category id.
func (c *Control) RemoveRestrictedCategory(categoryID string) {
	set := c.store.GetStringSet(keyRestricted)
	delete(set, categoryID)
	c.store.SetStringSet(keyRestricted, set)
}

// RestrictedCategories returns the restricted category-id set.
func (c *Control) RestrictedCategories() map[string]bool {
	return c.store.GetStringSet(keyRestricted)
}

// IsCategoryRestricted reports whether a category is currently blocked:
// parental control must be enabled and the category must be in the set.
func (c *Control) IsCategoryRestricted(categoryID string) bool {
	if !c.IsEnabled() {
		return false
	}

	return c.store.GetStringSet(keyRestricted)[categoryID]
}

// ClearAllRestrictions empties the restricted-category set.
func (c *Control) ClearAllRestrictions() {
	c.store.Remove(keyRestricted)
}
