package driven

// ConfigStore persists user settings as dotted keys such as
// "query.workers" or "database.path". Typed getters return the zero
// value for a missing key or a value of another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set updates a value and writes the store through.
	Set(key string, value any) error

	// Save writes every value; Load replaces them from storage.
	Save() error
	Load() error

	// Path is the backing file, empty for stores without one.
	Path() string
}
