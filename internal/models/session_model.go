package models

import "time"

// Session is the server-side half of a browser sign-in. AccessToken holds the
// provider token sealed with utils.Encrypt.
type Session struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Provider    string    `json:"provider"`
	AccessToken string    `json:"access_token"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}
