package cli

import (
	"sync"

	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

// Session holds the slot the user is looking at. It is owned by the App and
// passed explicitly to every journal call; the server decides whether the
// slot is writable.
type Session struct {
	mu   sync.RWMutex
	slot shiftclock.Slot
}

func NewSession(slot shiftclock.Slot) *Session {
	return &Session{slot: slot}
}

func (s *Session) Slot() shiftclock.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slot
}

func (s *Session) Select(slot shiftclock.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot = slot
}

func (s *Session) SetDate(d shiftclock.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot.Date = d
}

func (s *Session) SetShift(sh shiftclock.Shift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot.Shift = sh
}

// Editable reports whether the selection is the active slot.
func (s *Session) Editable(active shiftclock.Slot) bool {
	return s.Slot() == active
}
