package model

import "time"

// User is a registered traveller.  The e-mail address is unique and
// doubles as the login identifier.  PasswordHash stores a bcrypt hash;
// the clear-text password never leaves the registration handler.
//
// Fields:
//  ID           – primary key identifier.
//  Firstname    – given name.
//  Lastname     – family name.
//  Email        – unique login address.
//  PasswordHash – bcrypt hash of the password.
//  CreatedAt    – creation timestamp.
type User struct {
	ID           uint64    `json:"id"`        // users.id
	Firstname    string    `json:"firstname"` // users.firstname
	Lastname     string    `json:"lastname"`  // users.lastname
	Email        string    `json:"email"`     // users.email
	PasswordHash string    `json:"-"`         // users.password_hash, never serialized
	CreatedAt    time.Time `json:"created_at"`
}
