package cache

import "time"

// CacheService is the read-through cache the directory usecases sit on.
type CacheService interface {
	// Get returns the value and true on a hit.
	Get(key string) (interface{}, bool)

	// Set stores value for duration; zero means the cache default.
	Set(key string, value interface{}, duration time.Duration)

	Delete(key string)

	// DeletePrefix drops every key starting with prefix, e.g. all doctor
	// listings after a doctor is created.
	DeletePrefix(prefix string)

	Flush()
}

// Key joins parts into a cache key, "doctors:clinic=c1".
func Key(namespace string, parts ...string) string {
	k := namespace
	for _, p := range parts {
		k += ":" + p
	}
	return k
}
