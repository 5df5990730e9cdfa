package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	"github.com/BruksfildServices01/clinic-ledger/internal/domain/access"
	"github.com/BruksfildServices01/clinic-ledger/internal/dto"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/httpresp"
	"github.com/BruksfildServices01/clinic-ledger/internal/middleware"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, audit: audit}
}

type CreateUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("full_name ASC").Find(&users).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserDTO(u))
	}
	httpresp.List(c, out)
}

func (h *UserHandler) Create(c *gin.Context) {
	actorID, _ := middleware.CurrentUser(c)

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	role, ok := access.ParseRole(req.Role)
	if !ok {
		httperr.Respond(c, httperr.ErrBusiness("invalid_role"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Respond(c, httperr.ErrBusiness("duplicate_entry"))
		return
	}

	user := models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         string(role),
	}
	if err := h.db.Create(&user).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"role": user.Role},
	})

	httpresp.Created(c, dto.NewUserDTO(user))
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	actorID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, ok := access.ParseRole(req.Role)
	if !ok {
		httperr.Respond(c, httperr.ErrBusiness("invalid_role"))
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.Respond(c, httperr.ErrNotFound("user_not_found"))
		return
	}

	if err := h.db.Model(&user).Update("role", string(role)).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	user.Role = string(role)

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_role_changed",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"role": user.Role},
	})

	httpresp.OK(c, dto.NewUserDTO(user))
}
