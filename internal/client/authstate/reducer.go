// Package authstate holds the client-side authentication view-state.
//
// Reduce is a pure transition function. Storage writes it wants are returned
// as Effects and carried out by a Store.
package authstate

import "github.com/trailmate/trailmate-api/internal/core/domain"

type ActionType string

const (
	RegisterSuccess ActionType = "REGISTER_SUCCESS"
	RegisterFail    ActionType = "REGISTER_FAIL"
	LoginSuccess    ActionType = "LOGIN_SUCCESS"
	LoginFail       ActionType = "LOGIN_FAIL"
	UserLoaded      ActionType = "USER_LOADED"
	AuthError       ActionType = "AUTH_ERROR"
	Logout          ActionType = "LOGOUT"
)

// Payload carries the fields an action merges into the state. Zero fields
// are left untouched.
type Payload struct {
	Token string
	User  *domain.User
}

type Action struct {
	Type    ActionType
	Payload Payload
}

// State is what the client renders. Loading stays true until the first
// authentication outcome is known.
type State struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *domain.User
}

// HasToken reports whether a token is held.
func (s State) HasToken() bool {
	return s.Token != ""
}

// InitialState is the state before any action, seeded with a token read from
// storage.
func InitialState(token string) State {
	return State{Token: token, Loading: true}
}

// Effect is a storage write requested by Reduce.
type Effect interface {
	Apply(slot TokenSlot) error
}

// PersistToken stores Token in the slot.
type PersistToken struct {
	Token string
}

func (e PersistToken) Apply(slot TokenSlot) error {
	return slot.SetToken(e.Token)
}

// ClearToken empties the slot.
type ClearToken struct{}

func (ClearToken) Apply(slot TokenSlot) error {
	return slot.ClearToken()
}

// Reduce returns the state following a and the effects to run. Unknown
// action types leave the state unchanged and request nothing.
func Reduce(s State, a Action) (State, []Effect) {
	switch a.Type {
	case RegisterSuccess, LoginSuccess:
		if a.Payload.Token != "" {
			s.Token = a.Payload.Token
		}
		if a.Payload.User != nil {
			s.User = a.Payload.User
		}
		s.IsAuthenticated = true
		s.Loading = false
		return s, []Effect{PersistToken{Token: s.Token}}

	case UserLoaded:
		s.User = a.Payload.User
		s.IsAuthenticated = true
		s.Loading = false
		return s, nil

	case RegisterFail, LoginFail:
		s.Token = ""
		s.IsAuthenticated = false
		s.Loading = false
		return s, []Effect{ClearToken{}}

	case AuthError, Logout:
		s.Token = ""
		s.User = nil
		s.IsAuthenticated = false
		s.Loading = false
		return s, []Effect{ClearToken{}}

	default:
		return s, nil
	}
}
