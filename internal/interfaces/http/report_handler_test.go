package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/consultoria-pro/internal/application/report"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	apphttp "github.com/tu-usuario/consultoria-pro/internal/interfaces/http"
	"github.com/tu-usuario/consultoria-pro/internal/testutil"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
	pkgjwt "github.com/tu-usuario/consultoria-pro/pkg/jwt"
	"github.com/tu-usuario/consultoria-pro/pkg/logger"
)

// tokenFor genera un JWT para un usuario y rol concretos.
func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// buildReportApp monta la ruta de reenvío sobre el motor real con repos fake,
// con un reporte Rechazado de U1 ya sembrado.
func buildReportApp(t *testing.T) (*fiber.App, *testutil.FakeReportRepo) {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	reports := testutil.NewFakeReportRepo()
	assignments := testutil.NewFakeAssignmentRepo()
	lc := report.NewLifecycle(reports, assignments, &testutil.SeqIDGen{}, clock.Fixed(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)), log)

	feedback := "faltan detalles"
	require.NoError(t, reports.Create(nil, &entity.Report{
		ID:             "rep_1",
		UserID:         "U1",
		AssignmentID:   "proy_1",
		AssignmentType: entity.AssignmentKindProject,
		Descripcion:    "Desarrollo de interfaz",
		Horas:          decimal.RequireFromString("8"),
		Fecha:          time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:         entity.ReportStatusRechazado,
		Feedback:       &feedback,
	}))

	h := apphttp.NewReportHandler(lc, nil)
	app := fiber.New()
	app.Post("/api/reportes/:id/reenviar", apphttp.AuthMiddleware(testJWTSecret), h.Resubmit)
	return app, reports
}

func postResubmit(t *testing.T, app *fiber.App, reportID, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/reportes/"+reportID+"/reenviar", nil)
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// El dueño reenvía su rechazado y vuelve a Pendiente.
func TestResubmitRoute_DuenoReenvia(t *testing.T) {
	app, reports := buildReportApp(t)

	resp := postResubmit(t, app, "rep_1", tokenFor(t, "U1", "consultor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.ReportStatusPendiente, reports.Reports["rep_1"].Status)
	assert.Nil(t, reports.Reports["rep_1"].Feedback)
}

// Otro consultor autenticado no puede reenviar un rechazado ajeno: 403 y el
// reporte no cambia de estado.
func TestResubmitRoute_ConsultorAjenoRecibe403(t *testing.T) {
	app, reports := buildReportApp(t)

	resp := postResubmit(t, app, "rep_1", tokenFor(t, "U2", "consultor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, entity.ReportStatusRechazado, reports.Reports["rep_1"].Status,
		"el reporte ajeno no debe volver a la cola")
	require.NotNil(t, reports.Reports["rep_1"].Feedback)
}
