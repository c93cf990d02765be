package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/app/part"
	"go.uber.org/zap"
)

// PartHandler expõe o catálogo de peças
type PartHandler struct {
	parts  *part.Service
	logger *zap.Logger
}

func NewPartHandler(parts *part.Service, logger *zap.Logger) *PartHandler {
	return &PartHandler{parts: parts, logger: logger}
}

func (h *PartHandler) List(c *gin.Context) {
	parts, err := h.parts.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *PartHandler) GetByID(c *gin.Context) {
	found, err := h.parts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *PartHandler) Create(c *gin.Context) {
	var input part.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.parts.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type partUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
}

func (h *PartHandler) Update(c *gin.Context) {
	var req partUpdateRequest
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
	if req.Stock != nil {
		patch["stock"] = *req.Stock
	}

	updated, err := h.parts.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PartHandler) Delete(c *gin.Context) {
	if err := h.parts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
