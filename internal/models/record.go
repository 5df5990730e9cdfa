package models

import "time"

// Record is a booked appointment. Date is a calendar day (YYYY-MM-DD) and
// Time an optional clock time (HH:MM), both in the business time zone.
type Record struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date string `gorm:"size:10;not null;index" json:"date"`
	Time string `gorm:"size:5" json:"time"`

	ClientID *uint   `gorm:"index" json:"clientId"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	ServiceID uint    `gorm:"not null;index" json:"serviceId"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	// Nobody owns a record; work is claimed through completions.
	EmployeeID *uint `gorm:"-" json:"employeeId"`

	Status       string `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Reminder     bool   `gorm:"default:false" json:"reminder"`
	PatientCount int    `gorm:"not null;default:1" json:"patientCount"`

	NotificationSentAt *time.Time `json:"notificationSentAt"`
	CompletedAt        *time.Time `json:"completedAt"`
	CancelledAt        *time.Time `json:"cancelledAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
