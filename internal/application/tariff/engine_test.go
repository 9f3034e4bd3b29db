package tariff_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/consultoria-pro/internal/application/tariff"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/testutil"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
	"github.com/tu-usuario/consultoria-pro/pkg/logger"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newAssignment(id string) *entity.Assignment {
	return &entity.Assignment{
		ID: id, Kind: entity.AssignmentKindSupport, ConsultorID: "U1",
		CompanyID: "C1", ModuleID: "M1", SupportID: "S1",
		TarifaConsultor: decimal.RequireFromString("100"),
		TarifaCliente:   decimal.RequireFromString("150"),
		IsActive:        true,
	}
}

// Derive es determinista: misma asignación y nombres, misma entrada.
func TestDerive(t *testing.T) {
	a := newAssignment("sup_1")
	names := tariff.Names{Consultor: "Ana Pérez", Company: "Acme S.A.", WorkUnit: "Ticket facturación", Module: "SD"}

	entry := tariff.Derive(a, names, fixedNow)
	assert.Equal(t, "tarifa_sup_1", entry.ID, "el id de la tarifa se deriva del id de la asignación")
	assert.Equal(t, "sup_1", entry.AssignmentID)
	assert.Equal(t, entity.AssignmentKindSupport, entry.Tipo)
	assert.Equal(t, "S1", entry.WorkUnitID)
	assert.True(t, entry.Margen.Equal(decimal.RequireFromString("50")))
	assert.True(t, entry.MargenPorcentaje.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, entry.IsActive)
	assert.Equal(t, fixedNow, entry.CreatedAt)
}

type engineEnv struct {
	engine      *tariff.Engine
	tariffs     *testutil.FakeTariffRepo
	assignments *testutil.FakeAssignmentRepo
	users       *testutil.FakeUserRepo
}

func newEngineEnv() *engineEnv {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	tariffs := testutil.NewFakeTariffRepo()
	assignments := testutil.NewFakeAssignmentRepo()
	users := testutil.NewFakeUserRepo()
	engine := tariff.NewEngine(
		tariffs, assignments, users,
		testutil.NewFakeCompanyRepo(), testutil.NewFakeProjectRepo(),
		testutil.NewFakeSupportRepo(), testutil.NewFakeModuleRepo(),
		clock.Fixed(fixedNow), log,
	)
	return &engineEnv{engine: engine, tariffs: tariffs, assignments: assignments, users: users}
}

// Referencias no resolubles degradan a "Unknown" con warning; la entrada se crea igual.
func TestUpsertOnCreate_SeDegradaConNombresIncompletos(t *testing.T) {
	e := newEngineEnv()
	a := newAssignment("sup_1")

	warning := e.engine.UpsertOnCreate(context.Background(), a)
	assert.NotEmpty(t, warning)

	entry := e.tariffs.Entries["tarifa_sup_1"]
	require.NotNil(t, entry)
	assert.Equal(t, "Unknown", entry.ConsultorNombre)
	assert.Equal(t, "Unknown", entry.CompanyNombre)
	assert.Equal(t, "Unknown", entry.WorkUnitNombre)
	assert.Equal(t, "Unknown", entry.ModuleNombre)
}

// El fallo de persistencia vuelve como warning, nunca como error.
func TestUpsertOnCreate_FalloDePersistencia(t *testing.T) {
	e := newEngineEnv()
	e.tariffs.FailCreate = assert.AnError

	warning := e.engine.UpsertOnCreate(context.Background(), newAssignment("sup_1"))
	assert.NotEmpty(t, warning)
	assert.Empty(t, e.tariffs.Entries)
}

// RemoveOnDelete es idempotente: borrar una entrada ausente no es un error.
func TestRemoveOnDelete_Idempotente(t *testing.T) {
	e := newEngineEnv()
	e.engine.UpsertOnCreate(context.Background(), newAssignment("sup_1"))

	require.NoError(t, e.engine.RemoveOnDelete(context.Background(), "sup_1"))
	assert.Empty(t, e.tariffs.Entries)
	assert.NoError(t, e.engine.RemoveOnDelete(context.Background(), "sup_1"))
}

// El tarifario solo expone las entradas activas.
func TestTarifario_SoloActivas(t *testing.T) {
	e := newEngineEnv()
	e.engine.UpsertOnCreate(context.Background(), newAssignment("sup_1"))
	e.engine.UpsertOnCreate(context.Background(), newAssignment("sup_2"))
	e.tariffs.Entries["tarifa_sup_2"].IsActive = false

	out, err := e.engine.Tarifario(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "tarifa_sup_1", out.Items[0].ID)
}

// El escaneo de huérfanas reporta entradas cuya asignación ya no existe.
func TestScanForOrphanTariffs(t *testing.T) {
	e := newEngineEnv()

	viva := newAssignment("sup_viva")
	require.NoError(t, e.assignments.Create(context.Background(), viva))
	e.engine.UpsertOnCreate(context.Background(), viva)
	e.engine.UpsertOnCreate(context.Background(), newAssignment("sup_borrada"))

	out, err := e.engine.ScanForOrphanTariffs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Orphans, 1)
	assert.Equal(t, "sup_borrada", out.Orphans[0].AssignmentID)
}
