// models/user.go
package models

import (
	"time"
)

// User is an authentication identity. The registry itself only ever sees the
// user's ID as an opaque account number; wallet/identity management stays
// outside the state machine.
type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	IsGuest   bool      `gorm:"default:false" json:"is_guest"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}
