package authstate

import (
	"sync"

	"github.com/rs/zerolog"
)

// TokenSlot is the single persisted string holding the current token.
type TokenSlot interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// MemorySlot is a TokenSlot kept in memory.
type MemorySlot struct {
	mu    sync.Mutex
	token string
}

func (m *MemorySlot) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemorySlot) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemorySlot) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// Store applies actions to a State and carries out the resulting effects
// against its slot.
type Store struct {
	mu    sync.Mutex
	state State
	slot  TokenSlot
	log   zerolog.Logger
}

// NewStore seeds the state with the token found in slot. A slot read error
// is logged and the store starts without a token.
func NewStore(slot TokenSlot, log zerolog.Logger) *Store {
	token, err := slot.Token()
	if err != nil {
		log.Warn().Err(err).Msg("read token slot")
		token = ""
	}
	return &Store{state: InitialState(token), slot: slot, log: log}
}

// Dispatch reduces a and runs its effects. Effect failures are logged; the
// state transition is kept regardless.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, effects := Reduce(s.state, a)
	s.state = next
	for _, e := range effects {
		if err := e.Apply(s.slot); err != nil {
			s.log.Error().Err(err).Str("action", string(a.Type)).Msg("apply auth effect")
		}
	}
	return next
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
