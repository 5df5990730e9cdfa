package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/httpresp"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// auditFilter narrows the log by action, entity, actor and business day.
func auditFilter(c *gin.Context, q *gorm.DB) *gorm.DB {
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if raw := c.Query("userId"); raw != "" {
		if userID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			q = q.Where("user_id = ?", userID)
		}
	}
	if from, err := timezone.ParseDay(c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}
	if to, err := timezone.ParseDay(c.Query("to")); err == nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}
	return q
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	q := auditFilter(c, h.db.Model(&models.AuditLog{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
