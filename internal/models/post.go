package models

import (
	"time"
)

// Post represents a text post owned by exactly one user.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"column:user_id;index;not null"`
	CreatedOn time.Time `json:"created_on" gorm:"autoCreateTime;not null"`
}

// TableName specifies the table name for Post Model
func (Post) TableName() string {
	return "posts"
}
