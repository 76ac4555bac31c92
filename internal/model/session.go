package model

import "time"

// Session is an authenticated owner session. Sessions live in Redis
// with a TTL; the database never sees them.
type Session struct {
	Token     string    `json:"-"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
