package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/master-scheduler/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/master-scheduler/internal/usecase/catalog"
)

type ServiceHandler struct {
	catalog *ucCatalog.Catalog
}

func NewServiceHandler(catalog *ucCatalog.Catalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required"`
	Price       float64 `json:"price"`
	Active      *bool   `json:"active"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context(), middleware.MasterID(c), false)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Invalid service data.", err.Error())
		return
	}

	s, err := h.catalog.Create(
		c.Request.Context(),
		middleware.MasterID(c),
		middleware.UserID(c),
		ucCatalog.ServiceInput{
			Name:        req.Name,
			Description: req.Description,
			DurationMin: req.DurationMin,
			Price:       req.Price,
			Active:      req.Active,
		},
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Invalid service data.", err.Error())
		return
	}

	s, err := h.catalog.Update(
		c.Request.Context(),
		middleware.MasterID(c),
		middleware.UserID(c),
		id,
		ucCatalog.ServicePatch{
			Name:        req.Name,
			Description: req.Description,
			DurationMin: req.DurationMin,
			Price:       req.Price,
			Active:      req.Active,
		},
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.Deactivate(
		c.Request.Context(),
		middleware.MasterID(c),
		middleware.UserID(c),
		id,
	); err != nil {
		writeError(c, err)
		return
	}

	httpresp.NoContent(c)
}
