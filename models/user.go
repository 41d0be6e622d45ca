package models

import "github.com/google/uuid"

// Position is a user's rank in the seven-level reporting hierarchy.
// The numeric value doubles as the index into a bet's per-position arrays.
type Position int

const (
	PositionOwner Position = iota
	PositionCompany
	PositionShareholder
	PositionSenior
	PositionMasterAgent
	PositionAgent
	PositionPlayer
)

// PositionCount is the fixed depth of the hierarchy.
const PositionCount = 7

func (p Position) String() string {
	switch p {
	case PositionOwner:
		return "owner"
	case PositionCompany:
		return "company"
	case PositionShareholder:
		return "shareholder"
	case PositionSenior:
		return "senior"
	case PositionMasterAgent:
		return "master_agent"
	case PositionAgent:
		return "agent"
	case PositionPlayer:
		return "player"
	}
	return "unknown"
}

// Valid reports whether p indexes a real hierarchy level.
func (p Position) Valid() bool {
	return p >= PositionOwner && p <= PositionPlayer
}

// UplineUser is one ancestor in a player's materialized reporting chain.
type UplineUser struct {
	ID       uuid.UUID `db:"id"`
	Username string    `db:"username"`
	Position Position  `db:"position"`
}

// PlayerInfo is the slice of a user row the rollforward engine pages over:
// identity plus whether the account settles on credit.
type PlayerInfo struct {
	UserID   uuid.UUID `db:"user_id"`
	IsCredit bool      `db:"is_credit"`
}
