package user

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// User represents a row in the users table. The primary key is derived from
// the email address, not generated by the store, so a re-registration of the
// same email collides on both id and email.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Age          int
	Weight       int // stored in the "bb" column, the mobile client's field name
	Diabetes     string
	CreatedAt    time.Time
}

// Attributes are the user traits passed to the inference script.
type Attributes struct {
	Age      int
	Weight   int
	Diabetes string
}

// DeriveID returns the deterministic user identifier for an email address:
// the hex-encoded SHA-256 digest of the raw email string.
func DeriveID(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}
