package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/httpresp"
	"github.com/BruksfildServices01/clinic-ledger/internal/middleware"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

// LedgerHandler serves manual incomes and expenses. Record incomes are only
// ever written by the ledger generator.
type LedgerHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewLedgerHandler(db *gorm.DB, audit *audit.Dispatcher) *LedgerHandler {
	return &LedgerHandler{db: db, audit: audit}
}

type LedgerEntryRequest struct {
	Date   string `json:"date" binding:"required,yyyymmdd"`
	Time   string `json:"time" binding:"hhmm"`
	Name   string `json:"name" binding:"required"`
	Amount int64  `json:"amount" binding:"gt=0"`
}

// ======================================================
// INCOMES
// ======================================================

func (h *LedgerHandler) ListIncomes(c *gin.Context) {
	r, err := timezone.ParseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var incomes []models.Income
	if err := h.db.
		Where("date BETWEEN ? AND ?", r.Start, r.End).
		Order("date ASC, time ASC, id ASC").
		Find(&incomes).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, incomes)
}

func (h *LedgerHandler) CreateIncome(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var req LedgerEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	income := models.Income{
		Date:   req.Date,
		Time:   req.Time,
		Name:   strings.TrimSpace(req.Name),
		Amount: req.Amount,
	}
	if err := h.db.Create(&income).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "income_created",
		Entity:   "income",
		EntityID: &income.ID,
	})

	httpresp.Created(c, income)
}

// DeleteIncome only removes manual entries; a record's income goes away with
// its record.
func (h *LedgerHandler) DeleteIncome(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var income models.Income
	if err := h.db.First(&income, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.ErrNotFound("income_not_found"))
			return
		}
		httperr.Respond(c, err)
		return
	}
	if income.RecordID != nil {
		httperr.Respond(c, httperr.ErrBusiness("income_linked_to_record"))
		return
	}

	if err := h.db.Delete(&income).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "income_deleted",
		Entity:   "income",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}

// ======================================================
// EXPENSES
// ======================================================

func (h *LedgerHandler) ListExpenses(c *gin.Context) {
	r, err := timezone.ParseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var expenses []models.Expense
	if err := h.db.
		Where("date BETWEEN ? AND ?", r.Start, r.End).
		Order("date ASC, time ASC, id ASC").
		Find(&expenses).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, expenses)
}

func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var req LedgerEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	expense := models.Expense{
		Date:   req.Date,
		Time:   req.Time,
		Name:   strings.TrimSpace(req.Name),
		Amount: req.Amount,
	}
	if err := h.db.Create(&expense).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "expense_created",
		Entity:   "expense",
		EntityID: &expense.ID,
	})

	httpresp.Created(c, expense)
}

func (h *LedgerHandler) DeleteExpense(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.Delete(&models.Expense{}, id)
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, httperr.ErrNotFound("expense_not_found"))
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "expense_deleted",
		Entity:   "expense",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}
