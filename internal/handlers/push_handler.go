package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/httpresp"
	"github.com/BruksfildServices01/clinic-ledger/internal/middleware"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

type PushHandler struct {
	db *gorm.DB
}

func NewPushHandler(db *gorm.DB) *PushHandler {
	return &PushHandler{db: db}
}

type SubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

func (h *PushHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var subs []models.PushSubscription
	if err := h.db.Where("user_id = ?", userID).Order("id ASC").Find(&subs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, subs)
}

// Subscribe registers the endpoint for the caller. A known endpoint moves
// to the caller with fresh keys.
func (h *PushHandler) Subscribe(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var req SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}

	sub := models.PushSubscription{
		UserID:   userID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
	}).Create(&sub).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, sub)
}

func (h *PushHandler) Unsubscribe(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var req UnsubscribeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.db.
		Where("user_id = ? AND endpoint = ?", userID, req.Endpoint).
		Delete(&models.PushSubscription{}).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
