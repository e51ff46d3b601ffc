package models

import "time"

// VerificationCode represents a row in users.codes.
//
// Rows accumulate — every send inserts a new one — and the confirm step
// reads the most recent code for an e-mail address. Codes have no foreign
// key: they exist before the account does and are joined by e-mail string
// only.
type VerificationCode struct {
	Idx       int64     `json:"-"`
	Email     string    `json:"-"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the VerificationCode model.
func (c VerificationCode) TableName() string {
	return "users.codes"
}
