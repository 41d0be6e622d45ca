package service

import (
	"archiver/models"

	"github.com/google/uuid"
)

// RunState is the working set of one settlement pass: which players settle
// on credit, the usernames seen so far, and the uplines already resolved.
// It is owned by the single sequential run and discarded at exit; everything
// durable derives from it through the stores.
type RunState struct {
	creditPlayers map[uuid.UUID]bool
	usernames     map[uuid.UUID]string
	uplines       map[uuid.UUID][]models.UplineUser
}

// NewRunState creates an empty run state.
func NewRunState() *RunState {
	return &RunState{
		creditPlayers: make(map[uuid.UUID]bool),
		usernames:     make(map[uuid.UUID]string),
		uplines:       make(map[uuid.UUID][]models.UplineUser),
	}
}

// AddCreditPlayer marks a player as settling on credit for this run.
func (s *RunState) AddCreditPlayer(userID uuid.UUID) {
	s.creditPlayers[userID] = true
}

// IsCreditPlayer reports whether the player was discovered as credit during
// rollforward.
func (s *RunState) IsCreditPlayer(userID uuid.UUID) bool {
	return s.creditPlayers[userID]
}

// MemoUsername records a username the first time it is seen; later sightings
// never overwrite.
func (s *RunState) MemoUsername(userID uuid.UUID, username string) {
	if _, ok := s.usernames[userID]; !ok {
		s.usernames[userID] = username
	}
}

// Username returns the memoized username for a user.
func (s *RunState) Username(userID uuid.UUID) (string, bool) {
	name, ok := s.usernames[userID]
	return name, ok
}

// Upline returns the cached reporting chain for a user.
func (s *RunState) Upline(userID uuid.UUID) ([]models.UplineUser, bool) {
	upline, ok := s.uplines[userID]
	return upline, ok
}

// SetUpline caches a resolved reporting chain for the rest of the run.
func (s *RunState) SetUpline(userID uuid.UUID, upline []models.UplineUser) {
	s.uplines[userID] = upline
}
