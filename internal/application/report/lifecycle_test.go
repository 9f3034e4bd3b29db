package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/application/report"
	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/testutil"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
	"github.com/tu-usuario/consultoria-pro/pkg/logger"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type env struct {
	lifecycle   *report.Lifecycle
	reports     *testutil.FakeReportRepo
	assignments *testutil.FakeAssignmentRepo
}

func newEnv() *env {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	reports := testutil.NewFakeReportRepo()
	assignments := testutil.NewFakeAssignmentRepo()
	lc := report.NewLifecycle(reports, assignments, &testutil.SeqIDGen{}, clock.Fixed(fixedNow), log)
	return &env{lifecycle: lc, reports: reports, assignments: assignments}
}

func (e *env) seedAssignment(id, consultor string) {
	e.assignments.Assignments[id] = &entity.Assignment{
		ID: id, Kind: entity.AssignmentKindProject, ConsultorID: consultor,
		CompanyID: "C1", ModuleID: "M1", ProjectID: "P1", IsActive: true,
	}
}

func submitReq(assignmentID, userID string) dto.SubmitReportRequest {
	return dto.SubmitReportRequest{
		UserID:       userID,
		AssignmentID: assignmentID,
		Descripcion:  "Desarrollo de interfaz",
		Horas:        decimal.RequireFromString("8"),
		Fecha:        "2024-03-14",
	}
}

// Submit resuelve tipo, empresa y módulo desde la asignación; el cliente no los aporta.
func TestSubmit_ResuelveDatosDeLaAsignacion(t *testing.T) {
	e := newEnv()
	e.seedAssignment("proy_1", "U1")

	out, err := e.lifecycle.Submit(context.Background(), submitReq("proy_1", "U1"))
	require.NoError(t, err)
	assert.Equal(t, entity.AssignmentKindProject, out.AssignmentType)
	assert.Equal(t, "C1", out.CompanyID)
	assert.Equal(t, "M1", out.ModuleID)
	assert.Equal(t, entity.ReportStatusPendiente, out.Status)
	assert.Nil(t, out.Feedback)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), out.Fecha)
}

// Asignación inexistente o inactiva rechaza con ErrAssignmentNotFound.
func TestSubmit_AsignacionInvalida(t *testing.T) {
	e := newEnv()

	_, err := e.lifecycle.Submit(context.Background(), submitReq("proy_x", "U1"))
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)

	e.seedAssignment("proy_1", "U1")
	e.assignments.Assignments["proy_1"].IsActive = false
	_, err = e.lifecycle.Submit(context.Background(), submitReq("proy_1", "U1"))
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound, "una asignación desactivada no admite reportes")
}

// Reportar contra la asignación de otro consultor rechaza con ErrOwnershipMismatch.
func TestSubmit_AsignacionAjena(t *testing.T) {
	e := newEnv()
	e.seedAssignment("proy_1", "U1")

	_, err := e.lifecycle.Submit(context.Background(), submitReq("proy_1", "U2"))
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
	assert.Empty(t, e.reports.Reports)
}

func TestSubmit_EntradaInvalida(t *testing.T) {
	e := newEnv()
	e.seedAssignment("proy_1", "U1")

	req := submitReq("proy_1", "U1")
	req.Horas = decimal.RequireFromString("-1")
	_, err := e.lifecycle.Submit(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = submitReq("proy_1", "U1")
	req.Fecha = "14/03/2024"
	_, err = e.lifecycle.Submit(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Pendiente → Aprobado. Aprobado es terminal.
func TestApprove(t *testing.T) {
	e := newEnv()
	e.seedAssignment("proy_1", "U1")
	out, err := e.lifecycle.Submit(context.Background(), submitReq("proy_1", "U1"))
	require.NoError(t, err)

	approved, err := e.lifecycle.Approve(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusAprobado, approved.Status)

	_, err = e.lifecycle.Approve(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "aprobar dos veces no es válido")
	_, err = e.lifecycle.Reject(context.Background(), out.ID, "tarde")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un aprobado no se puede rechazar")
	assert.Equal(t, entity.ReportStatusAprobado, e.reports.Reports[out.ID].Status,
		"una transición inválida deja el reporte intacto")
}

// Rechazo sin comentario guarda el feedback por defecto.
func TestReject_FeedbackPorDefecto(t *testing.T) {
	e := newEnv()
	e.seedAssignment("proy_1", "U1")
	out, err := e.lifecycle.Submit(context.Background(), submitReq("proy_1", "U1"))
	require.NoError(t, err)

	rejected, err := e.lifecycle.Reject(context.Background(), out.ID, "")
	require.NoError(t, err)
	require.NotNil(t, rejected.Feedback)
	assert.Equal(t, entity.FeedbackPorDefecto, *rejected.Feedback)

	rejected2, err := e.lifecycle.Reject(context.Background(), mustSubmit(t, e, "proy_1", "U1"), "faltan detalles")
	require.NoError(t, err)
	assert.Equal(t, "faltan detalles", *rejected2.Feedback)
}

// Rechazado → Pendiente vía reenvío: aplica el parche, limpia feedback y marca ResubmittedAt.
func TestResubmit(t *testing.T) {
	e := newEnv()
	e.seedAssignment("proy_1", "U1")
	id := mustSubmit(t, e, "proy_1", "U1")
	_, err := e.lifecycle.Reject(context.Background(), id, "horas infladas")
	require.NoError(t, err)

	horas := decimal.RequireFromString("6")
	desc := "Desarrollo de interfaz (corregido)"
	out, err := e.lifecycle.Resubmit(context.Background(), id, "U1", dto.ResubmitReportRequest{
		Descripcion: &desc,
		Horas:       &horas,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusPendiente, out.Status)
	assert.Nil(t, out.Feedback, "el feedback del rechazo anterior se limpia")
	require.NotNil(t, out.ResubmittedAt)
	assert.Equal(t, fixedNow, *out.ResubmittedAt)
	assert.True(t, out.Horas.Equal(horas))
	assert.Equal(t, desc, out.Descripcion)
}

func TestResubmit_SoloDesdeRechazado(t *testing.T) {
	e := newEnv()
	e.seedAssignment("proy_1", "U1")
	id := mustSubmit(t, e, "proy_1", "U1")

	_, err := e.lifecycle.Resubmit(context.Background(), id, "U1", dto.ResubmitReportRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un pendiente no se reenvía")

	_, err = e.lifecycle.Resubmit(context.Background(), "rep_x", "U1", dto.ResubmitReportRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Solo el dueño reenvía: otro consultor no puede devolver un rechazado ajeno
// a la cola ni parchear sus horas.
func TestResubmit_SoloElDueno(t *testing.T) {
	e := newEnv()
	e.seedAssignment("proy_1", "U1")
	id := mustSubmit(t, e, "proy_1", "U1")
	_, err := e.lifecycle.Reject(context.Background(), id, "faltan detalles")
	require.NoError(t, err)

	horas := decimal.RequireFromString("6")
	_, err = e.lifecycle.Resubmit(context.Background(), id, "U2", dto.ResubmitReportRequest{
		Horas: &horas,
	})
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)

	stored, err := e.reports.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusRechazado, stored.Status, "el reporte queda intacto")
	assert.True(t, stored.Horas.Equal(decimal.RequireFromString("8")))
	require.NotNil(t, stored.Feedback)
	assert.Equal(t, "faltan detalles", *stored.Feedback)
}

// Un reporte reenviado vuelve a la cola de pendientes.
func TestPending_IncluyeReenviados(t *testing.T) {
	e := newEnv()
	e.seedAssignment("proy_1", "U1")
	id := mustSubmit(t, e, "proy_1", "U1")
	_, err := e.lifecycle.Reject(context.Background(), id, "")
	require.NoError(t, err)

	list, err := e.lifecycle.Pending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = e.lifecycle.Resubmit(context.Background(), id, "U1", dto.ResubmitReportRequest{})
	require.NoError(t, err)

	list, err = e.lifecycle.Pending(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, id, list.Items[0].ID)
}

func mustSubmit(t *testing.T, e *env, assignmentID, userID string) string {
	t.Helper()
	out, err := e.lifecycle.Submit(context.Background(), submitReq(assignmentID, userID))
	require.NoError(t, err)
	return out.ID
}
