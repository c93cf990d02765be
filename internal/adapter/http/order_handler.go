package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/app/order"
	"github.com/pitstop/oficina-api/internal/domain/model"
	"github.com/pitstop/oficina-api/internal/infra/middleware"
	"go.uber.org/zap"
)

// OrderHandler expõe as ordens de serviço e suas associações de peças
// e serviços
type OrderHandler struct {
	orders *order.Service
	logger *zap.Logger
}

func NewOrderHandler(orders *order.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

func (h *OrderHandler) List(c *gin.Context) {
	filters := database.OrderFilters{
		Status:    model.OrderStatus(c.Query("status")),
		ClientID:  c.Query("clientId"),
		VehicleID: c.Query("vehicleId"),
	}

	orders, err := h.orders.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetByID busca uma ordem. Sujeitos CLIENT só enxergam ordens do
// cliente vinculado ao próprio usuário.
func (h *OrderHandler) GetByID(c *gin.Context) {
	found, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	subject := middleware.SubjectFrom(c)
	if !subject.IsAdmin() {
		if found.Client == nil || found.Client.UserID != subject.SubjectID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Acesso negado."})
			return
		}
	}
	c.JSON(http.StatusOK, found)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var input order.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.orders.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type orderUpdateRequest struct {
	Description  *string `json:"description"`
	Observations *string `json:"observations"`
}

func (h *OrderHandler) Update(c *gin.Context) {
	var req orderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	patch := map[string]interface{}{}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Observations != nil {
		patch["observations"] = *req.Observations
	}

	updated, err := h.orders.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var input order.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addPartRequest struct {
	PartID   string `json:"partId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// AddPart associa uma peça à ordem; repetições incrementam a quantidade
func (h *OrderHandler) AddPart(c *gin.Context) {
	var req addPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	usage, err := h.orders.AddPart(c.Request.Context(), c.Param("id"), req.PartID, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, usage)
}

type addServiceRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
}

func (h *OrderHandler) AddService(c *gin.Context) {
	var req addServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	usage, err := h.orders.AddService(c.Request.Context(), c.Param("id"), req.ServiceID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, usage)
}

func (h *OrderHandler) RemovePart(c *gin.Context) {
	if err := h.orders.RemovePart(c.Request.Context(), c.Param("usageId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) RemoveService(c *gin.Context) {
	if err := h.orders.RemoveService(c.Request.Context(), c.Param("usageId")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
