package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/clinic-ledger/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-ledger/internal/middleware"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

type CatalogHandler struct {
	repo  *infraRepo.CatalogGormRepository
	audit *audit.Dispatcher
}

func NewCatalogHandler(repo *infraRepo.CatalogGormRepository, audit *audit.Dispatcher) *CatalogHandler {
	return &CatalogHandler{repo: repo, audit: audit}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"max=20"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
}

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Active      *bool  `json:"active"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" binding:"omitempty,min=0"`
	Active      *bool   `json:"active"`
}

// ======================================================
// CLIENTS
// ======================================================

func (h *CatalogHandler) ListClients(c *gin.Context) {
	clients, err := h.repo.ListClients(c.Request.Context(), c.Query("query"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *CatalogHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client := models.Client{
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
	}
	if err := h.repo.CreateClient(c.Request.Context(), &client); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, client)
}

func (h *CatalogHandler) UpdateClient(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}

	client, err := h.repo.UpdateClient(c.Request.Context(), id, fields)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, client)
}

// DeleteClient refuses while records point at the client, unless
// ?cascade=true is given.
func (h *CatalogHandler) DeleteClient(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cascade := queryBool(c, "cascade")

	removed, err := h.repo.DeleteClient(c.Request.Context(), id, cascade)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &id,
		Metadata: map[string]any{"cascade": cascade, "records_deleted": removed},
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true, "recordsDeleted": removed})
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.repo.ListServices(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Active:      true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.repo.CreateService(c.Request.Context(), &svc); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	svc, err := h.repo.UpdateService(c.Request.Context(), id, fields)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cascade := queryBool(c, "cascade")

	removed, err := h.repo.DeleteService(c.Request.Context(), id, cascade)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &id,
		Metadata: map[string]any{"cascade": cascade, "records_deleted": removed},
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true, "recordsDeleted": removed})
}
