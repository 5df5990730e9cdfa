package dto

import "github.com/BruksfildServices01/clinic-ledger/internal/models"

type UserDTO struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func NewUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
	}
}
