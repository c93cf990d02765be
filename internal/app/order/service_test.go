package order_test

import (
	"testing"
	"time"

	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/app/order"
	"github.com/pitstop/oficina-api/internal/domain/model"
	"github.com/pitstop/oficina-api/internal/testutils"
	apperrors "github.com/pitstop/oficina-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	orders  *database.OrderRepository
	service *order.Service

	client  *model.Client
	other   *model.Client
	vehicle *model.Vehicle
	part    *model.Part
	labor   *model.Service
}

func setup(t *testing.T) *fixture {
	db := testutils.SetupTestDB(t)
	logger := testutils.TestLogger(t)

	clients := database.NewClientRepository(db)
	vehicles := database.NewVehicleRepository(db)
	parts := database.NewPartRepository(db)
	services := database.NewServiceRepository(db)
	orders := database.NewOrderRepository(db)

	f := &fixture{
		db:      db,
		orders:  orders,
		service: order.NewService(orders, clients, vehicles, logger),
	}

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	f.client = &model.Client{Name: "Cliente"}
	require.NoError(t, clients.Create(ctx, f.client))

	f.other = &model.Client{Name: "Outro"}
	require.NoError(t, clients.Create(ctx, f.other))

	f.vehicle = &model.Vehicle{Plate: "ABC1D23", Model: "Gol", OwnerID: f.client.ID}
	require.NoError(t, vehicles.Create(ctx, f.vehicle))

	f.part = &model.Part{Name: "Pastilha de freio", Price: 80, Stock: 4}
	require.NoError(t, parts.Create(ctx, f.part))

	f.labor = &model.Service{Name: "Troca de pastilhas", Price: 150}
	require.NoError(t, services.Create(ctx, f.labor))

	return f
}

func requireAPIStatus(t *testing.T, err error, status int) {
	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.Code)
}

func TestOrderService_Create(t *testing.T) {
	f := setup(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	t.Run("abre com status OPEN", func(t *testing.T) {
		o, err := f.service.Create(ctx, order.CreateInput{
			Description: "Barulho na suspensão",
			ClientID:    f.client.ID,
			VehicleID:   f.vehicle.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusOpen, o.Status)
		assert.NotEmpty(t, o.ID)
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		_, err := f.service.Create(ctx, order.CreateInput{
			Description: "x",
			ClientID:    "nao-existe",
			VehicleID:   f.vehicle.ID,
		})
		requireAPIStatus(t, err, 400)
		assert.Contains(t, err.Error(), "Cliente não encontrado")
	})

	t.Run("veículo de outro cliente", func(t *testing.T) {
		_, err := f.service.Create(ctx, order.CreateInput{
			Description: "x",
			ClientID:    f.other.ID,
			VehicleID:   f.vehicle.ID,
		})
		requireAPIStatus(t, err, 400)

		// O veículo existe; a mensagem é a própria causa, sem erro embrulhado
		var apiErr *apperrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "O veículo informado não pertence a este cliente.", apiErr.Message)
		assert.Nil(t, apiErr.Unwrap())
	})

	t.Run("veículo inexistente", func(t *testing.T) {
		_, err := f.service.Create(ctx, order.CreateInput{
			Description: "x",
			ClientID:    f.client.ID,
			VehicleID:   "nao-existe",
		})
		requireAPIStatus(t, err, 400)
	})
}

func TestOrderService_FinishRecomputesTotal(t *testing.T) {
	f := setup(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	o, err := f.service.Create(ctx, order.CreateInput{
		Description: "Troca de pastilhas",
		ClientID:    f.client.ID,
		VehicleID:   f.vehicle.ID,
	})
	require.NoError(t, err)

	_, err = f.service.AddPart(ctx, o.ID, f.part.ID, 2)
	require.NoError(t, err)
	_, err = f.service.AddService(ctx, o.ID, f.labor.ID)
	require.NoError(t, err)

	// Valor enviado pelo chamador é ignorado na finalização
	bogus := 9999.0
	finished, err := f.service.UpdateStatus(ctx, o.ID, order.UpdateStatusInput{
		Status:     model.StatusFinished,
		TotalValue: &bogus,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusFinished, finished.Status)
	assert.InDelta(t, 2*80+150, finished.TotalValue, 0.001)
	require.NotNil(t, finished.EndDate)
	assert.WithinDuration(t, time.Now(), *finished.EndDate, time.Minute)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := setup(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	o, err := f.service.Create(ctx, order.CreateInput{
		Description: "Revisão",
		ClientID:    f.client.ID,
		VehicleID:   f.vehicle.ID,
	})
	require.NoError(t, err)

	t.Run("status inválido", func(t *testing.T) {
		_, err := f.service.UpdateStatus(ctx, o.ID, order.UpdateStatusInput{Status: "QUALQUER"})
		requireAPIStatus(t, err, 400)
	})

	t.Run("ordem inexistente", func(t *testing.T) {
		_, err := f.service.UpdateStatus(ctx, "nao-existe", order.UpdateStatusInput{Status: model.StatusInProgress})
		requireAPIStatus(t, err, 404)
	})

	t.Run("transição simples mantém o valor", func(t *testing.T) {
		updated, err := f.service.UpdateStatus(ctx, o.ID, order.UpdateStatusInput{Status: model.StatusInProgress})
		require.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, updated.Status)
		assert.Zero(t, updated.TotalValue)
		assert.Nil(t, updated.EndDate)
	})
}

func TestOrderService_Usages(t *testing.T) {
	f := setup(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	o, err := f.service.Create(ctx, order.CreateInput{
		Description: "Revisão",
		ClientID:    f.client.ID,
		VehicleID:   f.vehicle.ID,
	})
	require.NoError(t, err)

	t.Run("quantidade inválida", func(t *testing.T) {
		_, err := f.service.AddPart(ctx, o.ID, f.part.ID, 0)
		requireAPIStatus(t, err, 400)
		assert.Contains(t, err.Error(), "quantidade deve ser maior que zero")
	})

	t.Run("peça repetida acumula quantidade", func(t *testing.T) {
		first, err := f.service.AddPart(ctx, o.ID, f.part.ID, 1)
		require.NoError(t, err)

		second, err := f.service.AddPart(ctx, o.ID, f.part.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 3, second.Quantity)
	})

	t.Run("peça inexistente", func(t *testing.T) {
		_, err := f.service.AddPart(ctx, o.ID, "nao-existe", 1)
		requireAPIStatus(t, err, 400)
	})

	t.Run("remoção de linha inexistente", func(t *testing.T) {
		err := f.service.RemovePart(ctx, "nao-existe")
		requireAPIStatus(t, err, 404)
	})
}
