package database_test

import (
	"testing"

	"github.com/pitstop/oficina-api/internal/adapter/database"
	"github.com/pitstop/oficina-api/internal/domain/model"
	"github.com/pitstop/oficina-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleRepository_DuplicatePlate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	clients := database.NewClientRepository(db)
	vehicles := database.NewVehicleRepository(db)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	owner := &model.Client{Name: "Dono"}
	require.NoError(t, clients.Create(ctx, owner))

	require.NoError(t, vehicles.Create(ctx, &model.Vehicle{Plate: "ABC1D23", Model: "Gol", OwnerID: owner.ID}))

	err := vehicles.Create(ctx, &model.Vehicle{Plate: "ABC1D23", Model: "Uno", OwnerID: owner.ID})
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestVehicleRepository_CreateWithUnknownOwner(t *testing.T) {
	db := testutils.SetupTestDB(t)
	vehicles := database.NewVehicleRepository(db)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	err := vehicles.Create(ctx, &model.Vehicle{Plate: "XYZ9A88", Model: "Onix", OwnerID: "nao-existe"})
	assert.ErrorIs(t, err, database.ErrForeignKey)
}

func TestVehicleRepository_ListByOwner(t *testing.T) {
	db := testutils.SetupTestDB(t)
	clients := database.NewClientRepository(db)
	vehicles := database.NewVehicleRepository(db)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	a := &model.Client{Name: "Dono A"}
	b := &model.Client{Name: "Dono B"}
	require.NoError(t, clients.Create(ctx, a))
	require.NoError(t, clients.Create(ctx, b))

	require.NoError(t, vehicles.Create(ctx, &model.Vehicle{Plate: "AAA1A11", Model: "Gol", OwnerID: a.ID}))
	require.NoError(t, vehicles.Create(ctx, &model.Vehicle{Plate: "BBB2B22", Model: "Uno", OwnerID: a.ID}))
	require.NoError(t, vehicles.Create(ctx, &model.Vehicle{Plate: "CCC3C33", Model: "Onix", OwnerID: b.ID}))

	ofA, err := vehicles.ListByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, ofA, 2)

	ofB, err := vehicles.ListByOwner(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, ofB, 1)
}

func TestVehicleRepository_DeleteNotFound(t *testing.T) {
	db := testutils.SetupTestDB(t)
	vehicles := database.NewVehicleRepository(db)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	err := vehicles.Delete(ctx, "nao-existe")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
