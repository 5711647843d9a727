// Package ident issues the random identifiers used for sessions and
// requests.
package ident

import "github.com/google/uuid"

// New returns a random UUIDv4 string.
func New() string {
	return uuid.NewString()
}
