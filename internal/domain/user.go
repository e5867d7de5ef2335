package domain

import "time"

// User is an account known to the authentication service
type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	FullName          string     `json:"full_name"`
	ConfirmationToken string     `json:"-"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Confirmed reports whether the user finished out-of-band email confirmation
func (u *User) Confirmed() bool {
	return u.ConfirmedAt != nil
}

// UserMetadata is auxiliary profile data stored alongside credentials
type UserMetadata struct {
	FullName string `json:"full_name"`
}

// SignUpOptions carries auxiliary data passed with a sign-up request
type SignUpOptions struct {
	Data UserMetadata `json:"data"`
}

// Session is the result of a successful password sign-in
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}
