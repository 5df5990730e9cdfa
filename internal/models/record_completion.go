package models

import "time"

// RecordCompletion is append-only: one row per "employee X served N patients
// of record Y" event.
type RecordCompletion struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RecordID uint    `gorm:"not null;index" json:"recordId"`
	Record   *Record `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	EmployeeID uint `gorm:"not null;index" json:"employeeId"`
	Employee   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"employee"`

	PatientCount int `gorm:"not null" json:"patientCount"`

	CreatedAt time.Time `json:"createdAt"`
}
