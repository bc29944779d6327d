package env

import "os"

// Get returns the named environment variable, or fallback when it is unset
// or empty. Structured settings go through pkg/config; this covers the few
// lookups made before config is loaded.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
