package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/access"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/httpresp"
	"github.com/BruksfildServices01/clinic-ledger/internal/middleware"
	ucAnalytics "github.com/BruksfildServices01/clinic-ledger/internal/usecase/analytics"
)

type AnalyticsHandler struct {
	monthlyUC  *ucAnalytics.GetMonthlyAnalytics
	incomeUC   *ucAnalytics.GetIncomeAnalytics
	expenseUC  *ucAnalytics.GetExpenseAnalytics
	clientsUC  *ucAnalytics.GetClientAnalytics
	workloadUC *ucAnalytics.GetEmployeeWorkload
}

func NewAnalyticsHandler(
	monthlyUC *ucAnalytics.GetMonthlyAnalytics,
	incomeUC *ucAnalytics.GetIncomeAnalytics,
	expenseUC *ucAnalytics.GetExpenseAnalytics,
	clientsUC *ucAnalytics.GetClientAnalytics,
	workloadUC *ucAnalytics.GetEmployeeWorkload,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		monthlyUC:  monthlyUC,
		incomeUC:   incomeUC,
		expenseUC:  expenseUC,
		clientsUC:  clientsUC,
		workloadUC: workloadUC,
	}
}

func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	out, err := h.monthlyUC.Execute(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AnalyticsHandler) Income(c *gin.Context) {
	out, err := h.incomeUC.Execute(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AnalyticsHandler) Expense(c *gin.Context) {
	out, err := h.expenseUC.Execute(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AnalyticsHandler) Clients(c *gin.Context) {
	out, err := h.clientsUC.Execute(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// Employee serves the workload view. Employees without analytics access may
// still read their own.
func (h *AnalyticsHandler) Employee(c *gin.Context) {
	userID, role := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if id != userID && !access.Allows(role, access.CanViewAnalytics) {
		httperr.Respond(c, httperr.ErrForbidden("forbidden"))
		return
	}

	in := ucAnalytics.WorkloadInput{
		EmployeeID: id,
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
	}
	if raw := c.Query("serviceId"); raw != "" {
		sid, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Invalid id.")
			return
		}
		serviceID := uint(sid)
		in.ServiceID = &serviceID
	}

	out, err := h.workloadUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}
