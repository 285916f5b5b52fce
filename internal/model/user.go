package model

import "time"

// Role separates the two kinds of accounts.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSalesman Role = "salesman"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleSalesman }

// User is a registered account. Records are created on registration and never
// updated afterwards.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy without credentials, safe to embed in a session or a response.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Session is the "current user" pointer. Timestamp is unix milliseconds, the
// same unit the persisted layout has always used.
type Session struct {
	User      User  `json:"user"`
	Timestamp int64 `json:"timestamp"`
	// Remember selects the long auto-login window.
	Remember bool `json:"remember"`
}

func (s Session) StartedAt() time.Time { return time.UnixMilli(s.Timestamp) }

// ExpiresAt returns the end of the validity window for this session.
func (s Session) ExpiresAt(ttl, rememberTTL time.Duration) time.Time {
	if s.Remember {
		return s.StartedAt().Add(rememberTTL)
	}
	return s.StartedAt().Add(ttl)
}
