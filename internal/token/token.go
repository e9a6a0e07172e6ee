// Package token mints the unguessable per-voter voting capabilities.
package token

import "github.com/google/uuid"

// New returns a fresh voting token: an opaque rendering of 128 random
// bits. Guessing or enumerating tokens is computationally infeasible;
// uniqueness is additionally enforced by the database index on
// votes.token, and the submission flow regenerates on the astronomically
// unlikely collision.
func New() string {
	return uuid.NewString()
}
