// models/user.go
package models

import "time"

// UserProfile is the application-side profile row. Its ID is the identity
// provider's user id, so the row is 1:1 with the external auth record and
// is created lazily on first successful signup/login/OAuth callback.
type UserProfile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Nickname  string    `gorm:"not null" json:"nickname"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "users"
}
