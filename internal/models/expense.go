package models

import "time"

type Expense struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date   string `gorm:"size:10;not null;index" json:"date"`
	Time   string `gorm:"size:5" json:"time"`
	Name   string `gorm:"size:255;not null" json:"name"`
	Amount int64  `gorm:"not null" json:"amount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
