package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/app/client"
	"github.com/pitstop/oficina-api/internal/app/order"
	"github.com/pitstop/oficina-api/internal/app/vehicle"
	"github.com/pitstop/oficina-api/internal/domain/model"
	"github.com/pitstop/oficina-api/internal/infra/middleware"
	"go.uber.org/zap"
)

// ClientHandler expõe o CRUD de clientes e as consultas self-scoped
type ClientHandler struct {
	clients  *client.Service
	vehicles *vehicle.Service
	orders   *order.Service
	logger   *zap.Logger
}

func NewClientHandler(clients *client.Service, vehicles *vehicle.Service, orders *order.Service, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clients:  clients,
		vehicles: vehicles,
		orders:   orders,
		logger:   logger,
	}
}

// List retorna todos os clientes, com busca opcional por nome/telefone
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetByID busca um cliente. O id "me" devolve a identidade autenticada;
// os demais ids exigem papel de administrador.
func (h *ClientHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	subject := middleware.SubjectFrom(c)

	if id == "me" {
		c.JSON(http.StatusOK, subject)
		return
	}

	if !subject.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acesso negado."})
		return
	}

	found, err := h.clients.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// Create registra um cliente; sujeitos CLIENT ficam vinculados ao próprio
// usuário
func (h *ClientHandler) Create(c *gin.Context) {
	var input client.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.clients.Create(c.Request.Context(), input, middleware.SubjectFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type clientUpdateRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req clientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.Address != nil {
		patch["address"] = *req.Address
	}

	updated, err := h.clients.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListVehicles lista os veículos de um cliente. Sujeitos CLIENT só podem
// consultar os próprios veículos; a violação é barrada antes de qualquer
// consulta ao banco.
func (h *ClientHandler) ListVehicles(c *gin.Context) {
	ownerID, ok := h.resolveScopedClient(c)
	if !ok {
		return
	}
	if ownerID == "" {
		c.JSON(http.StatusOK, []model.Vehicle{})
		return
	}

	vehicles, err := h.vehicles.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// ListOrders lista as ordens de um cliente, com o mesmo escopo de
// ListVehicles. Sujeitos sem cliente vinculado recebem lista vazia.
func (h *ClientHandler) ListOrders(c *gin.Context) {
	clientID, ok := h.resolveScopedClient(c)
	if !ok {
		return
	}
	if clientID == "" {
		c.JSON(http.StatusOK, []model.Order{})
		return
	}

	orders, err := h.orders.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// resolveScopedClient resolve o id de cliente alvo da rota aplicando o
// escopo do sujeito. Retorna ("", true) quando o sujeito não possui
// cliente vinculado e (qualquer, false) quando a resposta já foi escrita.
func (h *ClientHandler) resolveScopedClient(c *gin.Context) (string, bool) {
	id := c.Param("id")
	subject := middleware.SubjectFrom(c)

	if subject.IsAdmin() && id != "me" {
		return id, true
	}

	// Papel CLIENT: apenas "me" ou o próprio id de usuário são aceitos
	if !subject.IsAdmin() && id != "me" && id != subject.SubjectID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acesso negado."})
		return "", false
	}

	owner, err := h.clients.FindByUserID(c.Request.Context(), subject.SubjectID)
	if err != nil {
		respondError(c, h.logger, err)
		return "", false
	}
	if owner == nil {
		return "", true
	}
	return owner.ID, true
}
