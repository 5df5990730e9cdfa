package models

import "time"

// Income is a ledger entry. RecordID is set only for the entry generated
// from a record; the unique index keeps that entry single per record.
type Income struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date   string `gorm:"size:10;not null;index" json:"date"`
	Time   string `gorm:"size:5" json:"time"`
	Name   string `gorm:"size:255;not null" json:"name"`
	Amount int64  `gorm:"not null" json:"amount"`

	RecordID *uint   `gorm:"uniqueIndex:idx_incomes_record_id" json:"recordId"`
	Record   *Record `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Reminder bool `gorm:"default:false" json:"reminder"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
