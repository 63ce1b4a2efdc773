package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SessionUser is the subset of user data stored inside a session and
// returned by the auth endpoints.
type SessionUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"loginTime"`
}

type Session struct {
	SID    string      `json:"sid"`
	User   SessionUser `json:"user"`
	Expire time.Time   `json:"expire"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.Expire)
}
