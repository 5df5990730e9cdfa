package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

type EmployeeRefDTO struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type CompletionDTO struct {
	ID           uint           `json:"id"`
	RecordID     uint           `json:"recordId"`
	EmployeeID   uint           `json:"employeeId"`
	Employee     EmployeeRefDTO `json:"employee"`
	PatientCount int            `json:"patientCount"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func NewCompletionDTO(c models.RecordCompletion) CompletionDTO {
	return CompletionDTO{
		ID:         c.ID,
		RecordID:   c.RecordID,
		EmployeeID: c.EmployeeID,
		Employee: EmployeeRefDTO{
			ID:       c.Employee.ID,
			FullName: c.Employee.FullName,
			Role:     c.Employee.Role,
		},
		PatientCount: c.PatientCount,
		CreatedAt:    c.CreatedAt,
	}
}

func NewCompletionDTOs(in []models.RecordCompletion) []CompletionDTO {
	out := make([]CompletionDTO, 0, len(in))
	for _, c := range in {
		out = append(out, NewCompletionDTO(c))
	}
	return out
}
