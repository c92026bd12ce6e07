package app

import "github.com/google/uuid"

// newGameID returns a random UUIDv4 string used as the public game handle.
func newGameID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of a game handle, so callers can
// reject garbage before touching the registry.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
