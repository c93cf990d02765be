package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/adapter/database"
	apihttp "github.com/pitstop/oficina-api/internal/adapter/http"
	"github.com/pitstop/oficina-api/internal/app/auth"
	"github.com/pitstop/oficina-api/internal/app/client"
	"github.com/pitstop/oficina-api/internal/app/order"
	"github.com/pitstop/oficina-api/internal/app/vehicle"
	"github.com/pitstop/oficina-api/internal/domain/model"
	"github.com/pitstop/oficina-api/internal/infra/middleware"
	"github.com/pitstop/oficina-api/internal/testutils"
	"github.com/pitstop/oficina-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiFixture struct {
	db         *gorm.DB
	router     *gin.Engine
	keyManager *security.KeyManager

	clients  *database.ClientRepository
	vehicles *database.VehicleRepository
	users    *database.UserRepository
}

// setupAPI monta o router com os mesmos gates de papel usados pela
// aplicação, sobre um banco sqlite em memória
func setupAPI(t *testing.T) *apiFixture {
	db := testutils.SetupTestDB(t)
	logger := testutils.TestLogger(t)
	router := testutils.SetupTestRouter(t)

	km, err := security.NewKeyManager([]byte("segredo-de-teste"), logger)
	require.NoError(t, err)

	userRepo := database.NewUserRepository(db)
	clientRepo := database.NewClientRepository(db)
	vehicleRepo := database.NewVehicleRepository(db)
	orderRepo := database.NewOrderRepository(db)

	authService := auth.NewService(km, userRepo, time.Hour, logger)
	clientService := client.NewService(clientRepo, logger)
	vehicleService := vehicle.NewService(vehicleRepo, logger)
	orderService := order.NewService(orderRepo, clientRepo, vehicleRepo, logger)

	authHandler := apihttp.NewAuthHandler(authService, logger)
	clientHandler := apihttp.NewClientHandler(clientService, vehicleService, orderService, logger)
	vehicleHandler := apihttp.NewVehicleHandler(vehicleService, logger)
	orderHandler := apihttp.NewOrderHandler(orderService, logger)

	authMiddleware := middleware.NewAuthMiddleware(km, logger)
	admin := authMiddleware.Authorize(model.RoleAdmin)
	anyUser := authMiddleware.Authorize(model.RoleAdmin, model.RoleClient)

	router.POST("/auth/signup", authHandler.Signup)
	router.POST("/auth/login", authHandler.Login)
	router.GET("/auth/me", anyUser, authHandler.Me)

	router.GET("/clientes", admin, clientHandler.List)
	router.POST("/clientes", anyUser, clientHandler.Create)
	router.GET("/clientes/:id", anyUser, clientHandler.GetByID)
	router.GET("/clientes/:id/veiculos", anyUser, clientHandler.ListVehicles)
	router.GET("/clientes/:id/ordens", anyUser, clientHandler.ListOrders)

	router.GET("/veiculos", vehicleHandler.List)
	router.POST("/veiculos", admin, vehicleHandler.Create)

	router.POST("/ordens", anyUser, orderHandler.Create)
	router.GET("/ordens/:id", anyUser, orderHandler.GetByID)

	return &apiFixture{
		db:         db,
		router:     router,
		keyManager: km,
		clients:    clientRepo,
		vehicles:   vehicleRepo,
		users:      userRepo,
	}
}

func (f *apiFixture) adminToken(t *testing.T) string {
	token, err := f.keyManager.GenerateToken("admin-user", model.RoleAdmin, time.Hour)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) clientToken(t *testing.T, userID string) string {
	token, err := f.keyManager.GenerateToken(userID, model.RoleClient, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAPI_SignupLoginMe(t *testing.T) {
	f := setupAPI(t)

	resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/auth/signup", map[string]any{
		"name":     "Maria Silva",
		"email":    "maria@example.com",
		"password": "senha123",
		"phone":    "11 99999-0001",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	var signup struct {
		Message string        `json:"message"`
		User    *model.User   `json:"user"`
		Client  *model.Client `json:"client"`
	}
	testutils.ParseResponse(t, resp, &signup)
	assert.Equal(t, "Usuário e Cliente criados com sucesso!", signup.Message)
	require.NotNil(t, signup.User)
	assert.Equal(t, model.RoleClient, signup.User.Role)
	require.NotNil(t, signup.Client)
	assert.Equal(t, signup.User.ID, signup.Client.UserID)

	resp = testutils.MakeRequest(t, f.router, http.MethodPost, "/auth/login", map[string]any{
		"email":    "maria@example.com",
		"password": "senha123",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var login struct {
		Token string `json:"token"`
	}
	testutils.ParseResponse(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = testutils.MakeRequest(t, f.router, http.MethodGet, "/auth/me", nil, testutils.AuthHeader(login.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var me model.Subject
	testutils.ParseResponse(t, resp, &me)
	assert.Equal(t, signup.User.ID, me.SubjectID)
	assert.Equal(t, model.RoleClient, me.Role)
}

func TestAPI_LoginWrongPassword(t *testing.T) {
	f := setupAPI(t)

	resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/auth/signup", map[string]any{
		"name":     "Maria",
		"email":    "maria@example.com",
		"password": "senha123",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, f.router, http.MethodPost, "/auth/login", map[string]any{
		"email":    "maria@example.com",
		"password": "errada",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
}

func TestAPI_SignupDuplicateEmail(t *testing.T) {
	f := setupAPI(t)

	body := map[string]any{
		"name":     "Maria",
		"email":    "dup@example.com",
		"password": "senha123",
	}
	resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/auth/signup", body, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, f.router, http.MethodPost, "/auth/signup", body, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusConflict)

	var errBody map[string]string
	testutils.ParseResponse(t, resp, &errBody)
	assert.Equal(t, "Este email já está cadastrado.", errBody["error"])
}

func TestAPI_AccessGate(t *testing.T) {
	f := setupAPI(t)

	t.Run("sem token", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("token mal formatado", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes", nil,
			map[string]string{"Authorization": "abc"})
		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)

		var errBody map[string]string
		testutils.ParseResponse(t, resp, &errBody)
		assert.Equal(t, "Token mal formatado.", errBody["error"])
	})

	t.Run("token inválido", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes", nil,
			testutils.AuthHeader("nao-e-um-jwt"))
		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("papel insuficiente", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes", nil,
			testutils.AuthHeader(f.clientToken(t, "user-1")))
		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
	})

	t.Run("rota pública sem token", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/veiculos", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	})
}

func TestAPI_VehicleDuplicatePlate(t *testing.T) {
	f := setupAPI(t)
	admin := testutils.AuthHeader(f.adminToken(t))

	resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/clientes", map[string]any{
		"name": "Dono",
	}, admin)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	var owner model.Client
	testutils.ParseResponse(t, resp, &owner)

	body := map[string]any{
		"plate":   "ABC1D23",
		"model":   "Gol",
		"ownerId": owner.ID,
	}
	resp = testutils.MakeRequest(t, f.router, http.MethodPost, "/veiculos", body, admin)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, f.router, http.MethodPost, "/veiculos", body, admin)
	testutils.RequireHTTPStatus(t, resp, http.StatusConflict)

	var errBody map[string]string
	testutils.ParseResponse(t, resp, &errBody)
	assert.Equal(t, "Já existe um veículo com esta placa.", errBody["error"])
}

func TestAPI_VehicleUnknownOwner(t *testing.T) {
	f := setupAPI(t)
	admin := testutils.AuthHeader(f.adminToken(t))

	resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/veiculos", map[string]any{
		"plate":   "XYZ9A88",
		"model":   "Onix",
		"ownerId": "nao-existe",
	}, admin)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
}

func TestAPI_ClientSelfScope(t *testing.T) {
	f := setupAPI(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	// Cliente vinculado ao usuário autenticado, com um veículo
	mine := &model.Client{Name: "Minha Conta", UserID: "user-1"}
	require.NoError(t, f.clients.Create(ctx, mine))
	require.NoError(t, f.vehicles.Create(ctx, &model.Vehicle{Plate: "AAA1A11", Model: "Gol", OwnerID: mine.ID}))

	other := &model.Client{Name: "Outro", UserID: "user-2"}
	require.NoError(t, f.clients.Create(ctx, other))

	token := testutils.AuthHeader(f.clientToken(t, "user-1"))

	t.Run("me devolve a identidade", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes/me", nil, token)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var subject model.Subject
		testutils.ParseResponse(t, resp, &subject)
		assert.Equal(t, "user-1", subject.SubjectID)
	})

	t.Run("lista os próprios veículos", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes/me/veiculos", nil, token)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var vehicles []model.Vehicle
		testutils.ParseResponse(t, resp, &vehicles)
		require.Len(t, vehicles, 1)
		assert.Equal(t, "AAA1A11", vehicles[0].Plate)
	})

	t.Run("id de outro cliente é barrado", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes/"+other.ID+"/veiculos", nil, token)
		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
	})

	t.Run("consulta de cliente arbitrário é barrada", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes/"+other.ID, nil, token)
		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
	})

	t.Run("usuário sem cliente vinculado recebe lista vazia", func(t *testing.T) {
		orphan := testutils.AuthHeader(f.clientToken(t, "user-sem-cliente"))
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes/me/ordens", nil, orphan)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var orders []model.Order
		testutils.ParseResponse(t, resp, &orders)
		assert.Empty(t, orders)
	})

	t.Run("admin consulta qualquer cliente", func(t *testing.T) {
		adminToken := testutils.AuthHeader(f.adminToken(t))
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/clientes/"+other.ID, nil, adminToken)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var found model.Client
		testutils.ParseResponse(t, resp, &found)
		assert.Equal(t, other.ID, found.ID)
	})
}

func TestAPI_OrderAccess(t *testing.T) {
	f := setupAPI(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	mine := &model.Client{Name: "Minha Conta", UserID: "user-1"}
	require.NoError(t, f.clients.Create(ctx, mine))
	v := &model.Vehicle{Plate: "AAA1A11", Model: "Gol", OwnerID: mine.ID}
	require.NoError(t, f.vehicles.Create(ctx, v))

	admin := testutils.AuthHeader(f.adminToken(t))

	resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/ordens", map[string]any{
		"description": "Revisão",
		"clientId":    mine.ID,
		"vehicleId":   v.ID,
	}, admin)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	var created model.Order
	testutils.ParseResponse(t, resp, &created)
	assert.Equal(t, model.StatusOpen, created.Status)

	t.Run("dono enxerga a própria ordem", func(t *testing.T) {
		token := testutils.AuthHeader(f.clientToken(t, "user-1"))
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/ordens/"+created.ID, nil, token)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	})

	t.Run("outro usuário é barrado", func(t *testing.T) {
		token := testutils.AuthHeader(f.clientToken(t, "user-2"))
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/ordens/"+created.ID, nil, token)
		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
	})

	t.Run("ordem inexistente", func(t *testing.T) {
		resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/ordens/nao-existe", nil, admin)
		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	})
}
