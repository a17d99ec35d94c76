package models

import (
	"time"
)

// User represents a registered account. Users are created on signup and never
// mutated afterwards; deleting a user cascades to their posts.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedOn    time.Time `json:"created_on" gorm:"autoCreateTime;not null"`

	Posts []Post `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
