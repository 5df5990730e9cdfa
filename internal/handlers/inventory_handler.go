package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/clinic-ledger/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-ledger/internal/middleware"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type InventoryHandler struct {
	repo *infraRepo.InventoryGormRepository
}

func NewInventoryHandler(repo *infraRepo.InventoryGormRepository) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

type CreateItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"min=0"`
	Unit     string  `json:"unit"`
}

type AdjustItemRequest struct {
	Delta float64 `json:"delta" binding:"required"`
	Note  string  `json:"note"`
}

type PurchaseRequest struct {
	Quantity float64 `json:"quantity"`
	Amount   int64   `json:"amount"`
	Date     string  `json:"date" binding:"omitempty,yyyymmdd"`
	Time     string  `json:"time" binding:"hhmm"`
	Note     string  `json:"note"`
}

func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.repo.ListItems(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, items)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item := models.InventoryItem{
		Name:     strings.TrimSpace(req.Name),
		Quantity: req.Quantity,
		Unit:     strings.TrimSpace(req.Unit),
	}
	if err := h.repo.CreateItem(c.Request.Context(), &item); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, item)
}

func (h *InventoryHandler) Adjust(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AdjustItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.repo.Adjust(c.Request.Context(), id, req.Delta, req.Note, &userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, item)
}

// Purchase defaults to the current business day and clock.
func (h *InventoryHandler) Purchase(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req PurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Date == "" {
		now := timezone.Now()
		req.Date = timezone.Day(now)
		if req.Time == "" {
			req.Time = now.Format(timezone.ClockLayout)
		}
	}

	item, expense, err := h.repo.Purchase(c.Request.Context(), infraRepo.PurchaseInput{
		ItemID:   id,
		Quantity: req.Quantity,
		Amount:   req.Amount,
		Date:     req.Date,
		Time:     req.Time,
		Note:     req.Note,
		UserID:   &userID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item":    item,
		"expense": expense,
	})
}

func (h *InventoryHandler) History(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	history, err := h.repo.History(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, history)
}
