// Package user holds the authenticated identity handed to the core. The core
// never learns how the identity was established (JWT, session, ...), only
// who is acting.
package user

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrMissingID   = errors.New("identity requires a user id")
	ErrMissingName = errors.New("identity requires a user name")
)

type Identity struct {
	id   uuid.UUID
	name string
}

func NewIdentity(id uuid.UUID, name string) (Identity, error) {
	if id == uuid.Nil {
		return Identity{}, ErrMissingID
	}
	if name == "" {
		return Identity{}, ErrMissingName
	}
	return Identity{id: id, name: name}, nil
}

func (i Identity) ID() uuid.UUID { return i.id }
func (i Identity) Name() string  { return i.name }

func (i Identity) IsZero() bool {
	return i.id == uuid.Nil && i.name == ""
}
