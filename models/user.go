package models

import "time"

// Roles a registered account can hold. The role is assigned at registration
// and never changes afterwards.
const (
	RoleClient = "client"
	RoleWorker = "worker"
)

// User represents a registered account (client or worker).
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Location     string    `bson:"location,omitempty" json:"location,omitempty"` // clients
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`   // workers
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// PublicUser is the counterpart summary joined into booking listings.
type PublicUser struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
}
