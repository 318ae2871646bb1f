package service

import "github.com/oklog/ulid/v2"

// newID generates a lexicographically sortable unique ID for new entities.
func newID() string {
	return ulid.Make().String()
}
