package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models a registered account. Identity (ID, Email) is immutable once
// created; display fields may be patched on re-authentication.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	ImageURL     string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
