package assignment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/consultoria-pro/internal/application/assignment"
	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/application/tariff"
	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/testutil"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
	"github.com/tu-usuario/consultoria-pro/pkg/logger"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type env struct {
	registry    *assignment.Registry
	assignments *testutil.FakeAssignmentRepo
	tariffs     *testutil.FakeTariffRepo
	users       *testutil.FakeUserRepo
	companies   *testutil.FakeCompanyRepo
	supports    *testutil.FakeSupportRepo
	modules     *testutil.FakeModuleRepo
}

func newEnv() *env {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	assignments := testutil.NewFakeAssignmentRepo()
	tariffs := testutil.NewFakeTariffRepo()
	users := testutil.NewFakeUserRepo()
	companies := testutil.NewFakeCompanyRepo()
	projects := testutil.NewFakeProjectRepo()
	supports := testutil.NewFakeSupportRepo()
	modules := testutil.NewFakeModuleRepo()

	engine := tariff.NewEngine(tariffs, assignments, users, companies, projects, supports, modules, clock.Fixed(fixedNow), log)
	tx := &testutil.FakeTxRunner{Assignments: assignments, Tariffs: tariffs}
	registry := assignment.NewRegistry(tx, assignments, engine, &testutil.SeqIDGen{}, clock.Fixed(fixedNow), log)

	return &env{
		registry:    registry,
		assignments: assignments,
		tariffs:     tariffs,
		users:       users,
		companies:   companies,
		supports:    supports,
		modules:     modules,
	}
}

func (e *env) seedCatalog() {
	e.users.Users["U1"] = &entity.User{ID: "U1", Name: "Ana Pérez", Role: entity.RoleConsultor, IsActive: true}
	e.companies.Companies["C1"] = &entity.Company{ID: "C1", Name: "Acme S.A.", IsActive: true}
	e.supports.Supports["S1"] = &entity.Support{ID: "S1", Name: "Ticket facturación", IsActive: true}
	e.modules.Modules["M1"] = &entity.Module{ID: "M1", Name: "SD", IsActive: true}
}

func supportReq(consultor, cliente string) dto.CreateAssignmentRequest {
	return dto.CreateAssignmentRequest{
		Kind:            entity.AssignmentKindSupport,
		ConsultorID:     "U1",
		CompanyID:       "C1",
		ModuleID:        "M1",
		SupportID:       "S1",
		TarifaConsultor: decimal.RequireFromString(consultor),
		TarifaCliente:   decimal.RequireFromString(cliente),
	}
}

// Crear asignación de soporte con tarifas: aparece exactamente una entrada de
// tarifario con margen 50 y porcentaje 33.33.
func TestCreate_SupportConTarifa_DerivaTarifa(t *testing.T) {
	e := newEnv()
	e.seedCatalog()

	out, err := e.registry.Create(context.Background(), supportReq("100", "150"))
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Empty(t, out.Warning, "con catálogo completo no debe haber warning")
	assert.Equal(t, entity.AssignmentKindSupport, out.Kind)
	assert.True(t, out.IsActive)

	require.Len(t, e.tariffs.Entries, 1, "debe existir exactamente una entrada de tarifario")
	entry := e.tariffs.Entries[entity.TariffID(out.ID)]
	require.NotNil(t, entry, "el id de tarifa debe derivarse del id de asignación")
	assert.Equal(t, out.ID, entry.AssignmentID)
	assert.Equal(t, "Ana Pérez", entry.ConsultorNombre)
	assert.Equal(t, "Acme S.A.", entry.CompanyNombre)
	assert.Equal(t, "Ticket facturación", entry.WorkUnitNombre)
	assert.True(t, entry.Margen.Equal(decimal.RequireFromString("50")))
	assert.True(t, entry.MargenPorcentaje.Equal(decimal.RequireFromString("33.33")))
}

// Tarifas ambas en cero: soporte gratuito/interno, no genera entrada de tarifario.
func TestCreate_SinTarifa_NoDerivaTarifa(t *testing.T) {
	e := newEnv()
	e.seedCatalog()

	out, err := e.registry.Create(context.Background(), supportReq("0", "0"))
	require.NoError(t, err)
	assert.Empty(t, out.Warning)
	assert.Empty(t, e.tariffs.Entries, "asignación sin tarifa no debe tener entrada en el tarifario")
}

// Campos requeridos por tipo: faltantes rechazan con ErrValidation.
func TestCreate_CamposFaltantes(t *testing.T) {
	e := newEnv()
	e.seedCatalog()

	cases := []struct {
		name string
		mut  func(*dto.CreateAssignmentRequest)
	}{
		{"sin consultor", func(r *dto.CreateAssignmentRequest) { r.ConsultorID = "" }},
		{"sin empresa", func(r *dto.CreateAssignmentRequest) { r.CompanyID = "" }},
		{"sin módulo", func(r *dto.CreateAssignmentRequest) { r.ModuleID = "" }},
		{"support sin support_id", func(r *dto.CreateAssignmentRequest) { r.SupportID = "" }},
		{"kind desconocido", func(r *dto.CreateAssignmentRequest) { r.Kind = "otro" }},
		{"tarifa negativa", func(r *dto.CreateAssignmentRequest) { r.TarifaCliente = decimal.RequireFromString("-1") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := supportReq("100", "150")
			tc.mut(&req)
			_, err := e.registry.Create(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, e.assignments.Assignments, "ninguna asignación debe persistirse")
}

// Asignación de proyecto requiere project_id; de tarea admite soporte nil con descripción.
func TestCreate_KindsProjectYTask(t *testing.T) {
	e := newEnv()
	e.seedCatalog()

	_, err := e.registry.Create(context.Background(), dto.CreateAssignmentRequest{
		Kind: entity.AssignmentKindProject, ConsultorID: "U1", CompanyID: "C1", ModuleID: "M1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "project sin project_id debe fallar")

	out, err := e.registry.Create(context.Background(), dto.CreateAssignmentRequest{
		Kind: entity.AssignmentKindTask, ConsultorID: "U1", CompanyID: "C1", ModuleID: "M1",
		Descripcion:     "Migración de datos",
		TarifaConsultor: decimal.RequireFromString("80"),
		TarifaCliente:   decimal.RequireFromString("120"),
	})
	require.NoError(t, err)
	assert.Nil(t, out.LinkedSupportID, "tarea independiente no tiene soporte vinculado")

	entry := e.tariffs.Entries[entity.TariffID(out.ID)]
	require.NotNil(t, entry)
	assert.Equal(t, "Migración de datos", entry.WorkUnitNombre,
		"la unidad de trabajo de una tarea independiente es su descripción")
}

// Fallo del tarifario: la asignación queda creada y el error vuelve como warning.
func TestCreate_FalloDeTarifa_NoRevierteAsignacion(t *testing.T) {
	e := newEnv()
	e.seedCatalog()
	e.tariffs.FailCreate = errors.New("db caída")

	out, err := e.registry.Create(context.Background(), supportReq("100", "150"))
	require.NoError(t, err, "el fallo del tarifario nunca falla la creación")
	assert.Contains(t, out.Warning, "tarifario")
	assert.Len(t, e.assignments.Assignments, 1)
	assert.Empty(t, e.tariffs.Entries)
}

// Catálogo incompleto: los nombres se degradan a "Unknown" y llega un warning.
func TestCreate_NombresDesconocidos(t *testing.T) {
	e := newEnv() // sin seedCatalog

	out, err := e.registry.Create(context.Background(), supportReq("100", "150"))
	require.NoError(t, err)
	assert.NotEmpty(t, out.Warning)

	entry := e.tariffs.Entries[entity.TariffID(out.ID)]
	require.NotNil(t, entry)
	assert.Equal(t, "Unknown", entry.ConsultorNombre)
	assert.Equal(t, "Unknown", entry.CompanyNombre)
}

// Delete elimina asignación y tarifa juntas; repetir devuelve ErrNotFound.
func TestDelete_EliminaElPar(t *testing.T) {
	e := newEnv()
	e.seedCatalog()

	out, err := e.registry.Create(context.Background(), supportReq("100", "150"))
	require.NoError(t, err)
	require.Len(t, e.tariffs.Entries, 1)

	require.NoError(t, e.registry.Delete(context.Background(), out.ID))
	assert.Empty(t, e.assignments.Assignments)
	assert.Empty(t, e.tariffs.Entries, "la entrada de tarifario debe borrarse con la asignación")

	err = e.registry.Delete(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un consultor puede tener varias asignaciones activas simultáneas.
func TestListByConsultor_MultiplesActivas(t *testing.T) {
	e := newEnv()
	e.seedCatalog()

	_, err := e.registry.Create(context.Background(), supportReq("100", "150"))
	require.NoError(t, err)
	_, err = e.registry.Create(context.Background(), supportReq("90", "140"))
	require.NoError(t, err)

	list, err := e.registry.ListByConsultor(context.Background(), "U1")
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

// La cascada por usuario desactiva asignaciones y sus tarifas, sin borrar nada.
func TestDeactivateByUser_Cascada(t *testing.T) {
	e := newEnv()
	e.seedCatalog()

	out, err := e.registry.Create(context.Background(), supportReq("100", "150"))
	require.NoError(t, err)

	require.NoError(t, e.registry.DeactivateByUser(context.Background(), "U1"))

	a := e.assignments.Assignments[out.ID]
	require.NotNil(t, a, "la asignación no se borra, se desactiva")
	assert.False(t, a.IsActive)

	entry := e.tariffs.Entries[entity.TariffID(out.ID)]
	require.NotNil(t, entry)
	assert.False(t, entry.IsActive)

	list, err := e.registry.ListByConsultor(context.Background(), "U1")
	require.NoError(t, err)
	assert.Empty(t, list.Items, "los listados solo muestran activas")
}
