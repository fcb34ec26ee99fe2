package model

import "time"

// Access levels determine which parts of the box office a user may
// operate.  MANAGEMENT maintains the showing schedule and reads the
// sales history; SALES sells tickets.  The values are carried verbatim
// in the JWT "access_level" claim.
const (
	AccessLevelManagement = "MANAGEMENT"
	AccessLevelSales      = "SALES"
)

// User represents a box-office employee account.  Passwords are stored
// only as bcrypt hashes.  Handlers define separate response types, so
// no json tags are needed here.
//
// Fields:
//  Username     – unique login name.
//  PasswordHash – bcrypt hash of the password.
//  AccessLevel  – MANAGEMENT or SALES.
type User struct {
	Username     string
	PasswordHash string
	AccessLevel  string
}

// RefreshToken models an issued refresh token.  The plain token is
// returned to the client once; only its SHA-256 hex digest is kept.
//
// Fields:
//  Username  – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
type RefreshToken struct {
	Username  string
	TokenHash string
	ExpiresAt time.Time
}
