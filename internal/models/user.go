package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName    string `gorm:"size:100;not null" json:"firstName"`
	LastName     string `gorm:"size:100;not null" json:"lastName"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	AdminUser     bool   `gorm:"default:false" json:"adminUser"`
	LoginCount    int    `gorm:"default:0" json:"loginCount"`
	LastLoginDate string `gorm:"size:50" json:"lastLoginDate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
