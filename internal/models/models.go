package models

import (
	"time"
)

// User is the local record of an identity issued by the auth gateway.
// Username and role are not columns; they live in Token.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"          json:"id"`
	Token     string    `gorm:"type:text;not null;default:''"           json:"-"`
	Premium   int64     `gorm:"not null;default:0;check:premium >= 0"   json:"premium"`
	CreatedAt time.Time `gorm:"autoCreateTime"                          json:"created_at"`
}
