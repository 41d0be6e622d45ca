package models

import (
	"time"

	"github.com/google/uuid"
)

// OpeningBalance is one user's running balance checkpoint for one day.
// CreationDate is always normalized to the platform's daily cutoff time,
// so (CreationDate, UserID) is unique within a month partition.
type OpeningBalance struct {
	ID           uuid.UUID `db:"id"`
	Amount       int64     `db:"amount"`
	CreationDate time.Time `db:"creation_date"`
	UserID       uuid.UUID `db:"user_id"`
}

// CreditDebt is the commission owed to or by one upline member for one day,
// accumulated across every bet settled for that day. Username is denormalized
// for downstream reporting.
type CreditDebt struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	Username   string    `db:"username"`
	Currency   string    `db:"currency"`
	Date       time.Time `db:"date"`
	DebtAmount int64     `db:"debt_amount"`
}

// SystemLogKind is the severity of a durable system_log entry.
type SystemLogKind int32

const (
	SystemLogWarning  SystemLogKind = 100
	SystemLogError    SystemLogKind = 200
	SystemLogCritical SystemLogKind = 300
)
