// Package prefs is the persisted key-value layer. Callers only see get,
// set, and remove over string and string-set values; what sits behind
// that (a JSON file, a test map) is an implementation detail.
package prefs

// Store is the key-value port. Lookups report presence rather than
// erroring; a backend that cannot persist still behaves as an in-memory
// store rather than failing callers.
type Store interface {
	GetString(key string) (string, bool)
	SetString(key, value string)
	GetStringSet(key string) map[string]bool
	SetStringSet(key string, values map[string]bool)
	Remove(key string)
}

// Memory is a map-backed Store for tests and ephemeral sessions.
type Memory struct {
	strings map[string]string
	sets    map[string]map[string]bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		strings: make(map[string]string),
		sets:    make(map[string]map[string]bool),
	}
}

func (m *Memory) GetString(key string) (string, bool) {
	v, ok := m.strings[key]

	return v, ok
}

func (m *Memory) SetString(key, value string) {
	m.strings[key] = value
}

func (m *Memory) GetStringSet(key string) map[string]bool {
	out := make(map[string]bool, len(m.sets[key]))
	for v := range m.sets[key] {
		out[v] = true
	}

	return out
}

func (m *Memory) SetStringSet(key string, values map[string]bool) {
	set := make(map[string]bool, len(values))
	for v, ok := range values {
		if ok {
			set[v] = true
		}
	}

	m.sets[key] = set
}

func (m *Memory) Remove(key string) {
	delete(m.strings, key)
	delete(m.sets, key)
}
