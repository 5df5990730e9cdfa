package models

import "time"

type PushSubscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   uint   `gorm:"not null;index" json:"userId"`
	Endpoint string `gorm:"size:500;uniqueIndex;not null" json:"endpoint"`
	P256dh   string `gorm:"size:255" json:"p256dh"`
	Auth     string `gorm:"size:255" json:"auth"`

	CreatedAt time.Time `json:"createdAt"`
}
