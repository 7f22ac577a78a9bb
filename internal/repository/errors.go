// Package repository implements MongoDB-backed persistence for users and
// movies. The sentinel errors below let higher layers distinguish failure
// scenarios without inspecting driver errors; services translate them into
// the API error taxonomy.
package repository

import "errors"

// ErrNotFound is returned when a referenced document does not exist. It also
// covers malformed ids, which by definition resolve to no document.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when an insert collides with the unique
// username index.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when an insert collides with the unique email
// index.
var ErrEmailExists = errors.New("email already exists")
