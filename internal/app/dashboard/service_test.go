package dashboard_test

import (
	"testing"

	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/app/dashboard"
	"github.com/pitstop/oficina-api/internal/domain/model"
	"github.com/pitstop/oficina-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetMetrics(t *testing.T) {
	db := testutils.SetupTestDB(t)
	logger := testutils.TestLogger(t)
	service := dashboard.NewService(database.NewDashboardRepository(db), logger)

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	t.Run("banco vazio", func(t *testing.T) {
		metrics, err := service.GetMetrics(ctx)
		require.NoError(t, err)

		assert.Zero(t, metrics.TotalClients)
		assert.Zero(t, metrics.TotalOrders)
		assert.Zero(t, metrics.TotalRevenue)
		assert.Zero(t, metrics.CompletionRate)
		assert.Equal(t, int64(0), metrics.OrdersByStatus[string(model.StatusOpen)])
	})

	// Dois clientes, um veículo, três ordens (uma finalizada)
	clients := database.NewClientRepository(db)
	vehicles := database.NewVehicleRepository(db)
	orders := database.NewOrderRepository(db)
	parts := database.NewPartRepository(db)

	owner := &model.Client{Name: "Dono"}
	require.NoError(t, clients.Create(ctx, owner))
	require.NoError(t, clients.Create(ctx, &model.Client{Name: "Outro"}))

	v := &model.Vehicle{Plate: "ABC1D23", Model: "Gol", OwnerID: owner.ID}
	require.NoError(t, vehicles.Create(ctx, v))

	require.NoError(t, parts.Create(ctx, &model.Part{Name: "Filtro", Price: 30}))

	for _, status := range []model.OrderStatus{model.StatusOpen, model.StatusInProgress} {
		o := &model.Order{Description: "Ordem", ClientID: owner.ID, VehicleID: v.ID, Status: status}
		require.NoError(t, orders.Create(ctx, o))
	}
	finished := &model.Order{
		Description: "Finalizada",
		ClientID:    owner.ID,
		VehicleID:   v.ID,
		Status:      model.StatusFinished,
		TotalValue:  250.5,
	}
	require.NoError(t, orders.Create(ctx, finished))

	t.Run("com dados", func(t *testing.T) {
		metrics, err := service.GetMetrics(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(2), metrics.TotalClients)
		assert.Equal(t, int64(1), metrics.TotalVehicles)
		assert.Equal(t, int64(3), metrics.TotalOrders)
		assert.Equal(t, int64(1), metrics.PartsCount)
		assert.InDelta(t, 250.5, metrics.TotalRevenue, 0.001)

		assert.Equal(t, int64(1), metrics.OrdersByStatus[string(model.StatusOpen)])
		assert.Equal(t, int64(1), metrics.OrdersByStatus[string(model.StatusInProgress)])
		assert.Equal(t, int64(1), metrics.OrdersByStatus[string(model.StatusFinished)])
		assert.Equal(t, int64(0), metrics.OrdersByStatus[string(model.StatusCanceled)])

		// 1 de 3 finalizada, arredondado a duas casas
		assert.InDelta(t, 33.33, metrics.CompletionRate, 0.001)
	})
}
