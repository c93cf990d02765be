package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/app/servicecatalog"
	"go.uber.org/zap"
)

// ServiceHandler expõe o catálogo de serviços
type ServiceHandler struct {
	services *servicecatalog.Service
	logger   *zap.Logger
}

func NewServiceHandler(services *servicecatalog.Service, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{services: services, logger: logger}
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetByID(c *gin.Context) {
	found, err := h.services.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var input servicecatalog.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.services.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type serviceUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req serviceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Price != nil {
		patch["price"] = *req.Price
	}

	updated, err := h.services.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.services.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
