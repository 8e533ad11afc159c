package domain

import "time"

// DefaultAvatar is assigned to accounts created without a profile picture.
const DefaultAvatar = "https://cdn-icons-png.flaticon.com/512/3135/3135715.png"

// User models a marketplace account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsOwnedBy reports whether callerID may mutate this account.
func (u *User) IsOwnedBy(callerID string) bool {
	return callerID != "" && u.ID == callerID
}
