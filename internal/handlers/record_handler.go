package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-ledger/internal/dto"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/httpresp"
	"github.com/BruksfildServices01/clinic-ledger/internal/middleware"
	ucRecord "github.com/BruksfildServices01/clinic-ledger/internal/usecase/record"
)

// ======================================================
// HANDLER
// ======================================================

type RecordHandler struct {
	createUC      *ucRecord.CreateRecord
	updateUC      *ucRecord.UpdateRecord
	completeUC    *ucRecord.CompleteRecord
	deleteUC      *ucRecord.DeleteRecord
	listUC        *ucRecord.ListRecords
	getUC         *ucRecord.GetRecord
	completionsUC *ucRecord.ListRecordCompletions
}

func NewRecordHandler(
	createUC *ucRecord.CreateRecord,
	updateUC *ucRecord.UpdateRecord,
	completeUC *ucRecord.CompleteRecord,
	deleteUC *ucRecord.DeleteRecord,
	listUC *ucRecord.ListRecords,
	getUC *ucRecord.GetRecord,
	completionsUC *ucRecord.ListRecordCompletions,
) *RecordHandler {
	return &RecordHandler{
		createUC:      createUC,
		updateUC:      updateUC,
		completeUC:    completeUC,
		deleteUC:      deleteUC,
		listUC:        listUC,
		getUC:         getUC,
		completionsUC: completionsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateRecordRequest struct {
	ClientID     *uint  `json:"clientId"`
	ServiceID    uint   `json:"serviceId"`
	Date         string `json:"date" binding:"required,yyyymmdd"`
	Time         string `json:"time" binding:"hhmm"`
	Reminder     bool   `json:"reminder"`
	PatientCount *int   `json:"patientCount"`
}

type UpdateRecordRequest struct {
	Date         *string      `json:"date" binding:"omitempty,yyyymmdd"`
	Time         *string      `json:"time" binding:"omitempty,hhmm"`
	ClientID     nullableUint `json:"clientId"`
	ServiceID    *uint        `json:"serviceId"`
	PatientCount *int         `json:"patientCount"`
	Reminder     *bool        `json:"reminder"`
	Status       *string      `json:"status"`
}

type CompleteRecordRequest struct {
	PatientCount int `json:"patientCount"`
}

// ======================================================
// CREATE
// ======================================================

func (h *RecordHandler) Create(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	var req CreateRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	patientCount := 1
	if req.PatientCount != nil {
		patientCount = *req.PatientCount
	}

	rec, err := h.createUC.Execute(c.Request.Context(), ucRecord.CreateRecordInput{
		ActorID:      userID,
		ClientID:     req.ClientID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		Reminder:     req.Reminder,
		PatientCount: patientCount,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, rec)
}

// ======================================================
// READ
// ======================================================

func (h *RecordHandler) List(c *gin.Context) {
	records, err := h.listUC.Execute(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, records)
}

func (h *RecordHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	rec, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, rec)
}

func (h *RecordHandler) Completions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	completions, err := h.completionsUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewCompletionDTOs(completions))
}

// ======================================================
// UPDATE
// ======================================================

func (h *RecordHandler) Update(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucRecord.UpdateRecordInput{
		ActorID:      userID,
		RecordID:     id,
		Date:         req.Date,
		Time:         req.Time,
		ServiceID:    req.ServiceID,
		PatientCount: req.PatientCount,
		Reminder:     req.Reminder,
		Status:       req.Status,
	}
	if req.ClientID.Set {
		in.ClientID = req.ClientID.Value
		in.ClearClient = req.ClientID.Value == nil
	}

	rec, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, rec)
}

// ======================================================
// COMPLETE
// ======================================================

// Complete records that the caller served patientCount patients.
func (h *RecordHandler) Complete(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CompleteRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	completion, err := h.completeUC.Execute(c.Request.Context(), id, userID, req.PatientCount)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewCompletionDTO(*completion))
}

// ======================================================
// DELETE
// ======================================================

func (h *RecordHandler) Delete(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), userID, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
