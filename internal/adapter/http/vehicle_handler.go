package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/app/vehicle"
	"go.uber.org/zap"
)

// VehicleHandler expõe o CRUD de veículos
type VehicleHandler struct {
	vehicles *vehicle.Service
	logger   *zap.Logger
}

func NewVehicleHandler(vehicles *vehicle.Service, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, logger: logger}
}

func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicles.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) GetByID(c *gin.Context) {
	found, err := h.vehicles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var input vehicle.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.vehicles.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type vehicleUpdateRequest struct {
	Plate   *string `json:"plate"`
	Model   *string `json:"model"`
	Brand   *string `json:"brand"`
	Year    *int    `json:"year"`
	Color   *string `json:"color"`
	OwnerID *string `json:"ownerId"`
}

func (h *VehicleHandler) Update(c *gin.Context) {
	var req vehicleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	patch := map[string]interface{}{}
	if req.Plate != nil {
		patch["plate"] = *req.Plate
	}
	if req.Model != nil {
		patch["model"] = *req.Model
	}
	if req.Brand != nil {
		patch["brand"] = *req.Brand
	}
	if req.Year != nil {
		patch["year"] = *req.Year
	}
	if req.Color != nil {
		patch["color"] = *req.Color
	}
	if req.OwnerID != nil {
		patch["owner_id"] = *req.OwnerID
	}

	updated, err := h.vehicles.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
