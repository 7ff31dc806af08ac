package prefs

const (
	keyBaseURL  = "base_url"
	keyUsername = "username"
	keyPassword = "password"
)

// Credentials returns the persisted panel credential triple. ok is false
// when any of the three fields is missing or blank.
func Credentials(s Store) (baseURL, username, password string, ok bool) {
	baseURL, _ = s.GetString(keyBaseURL)
	username, _ = s.GetString(keyUsername)
	password, _ = s.GetString(keyPassword)

	ok = baseURL != "" && username != "" && password != ""

	return baseURL, username, password, ok
}

// SaveCredentials persists the panel credential triple.
func SaveCredentials(s Store, baseURL, username, password string) {
	s.SetString(keyBaseURL, baseURL)
	s.SetString(keyUsername, username)
	s.SetString(keyPassword, password)
}

// ClearCredentials removes the persisted credential triple.
func ClearCredentials(s Store) {
	s.Remove(keyBaseURL)
	s.Remove(keyUsername)
	s.Remove(keyPassword)
}
