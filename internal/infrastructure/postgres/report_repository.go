package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación de ReportRepository sobre PostgreSQL.
// Los reportes referencian asignaciones sin FK dura: un reporte aprobado
// sobrevive al borrado de su asignación.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de persistencia para reportes de horas.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const reportColumns = `
	id, user_id, assignment_id, assignment_type, company_id, module_id,
	descripcion, horas, fecha, status, feedback,
	created_at, updated_at, resubmitted_at`

// Create persiste un reporte de horas.
func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.pool.Exec(ctx, query,
		rep.ID, rep.UserID, rep.AssignmentID, rep.AssignmentType, rep.CompanyID, rep.ModuleID,
		rep.Descripcion, rep.Horas, rep.Fecha, rep.Status, rep.Feedback,
		rep.CreatedAt, rep.UpdatedAt, rep.ResubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetByID obtiene un reporte por ID. Devuelve (nil, nil) si no existe.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	rep, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

// Update actualiza un reporte (transiciones de estado y parches de reenvío).
func (r *ReportRepo) Update(ctx context.Context, rep *entity.Report) error {
	query := `
		UPDATE reports SET
			descripcion = $2, horas = $3, fecha = $4, status = $5, feedback = $6,
			updated_at = $7, resubmitted_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		rep.ID, rep.Descripcion, rep.Horas, rep.Fecha, rep.Status, rep.Feedback,
		rep.UpdatedAt, rep.ResubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	return nil
}

// ListByStatus lista reportes en un estado, del más antiguo al más reciente
// (la cola de aprobación se atiende en orden de llegada).
func (r *ReportRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE status = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, status)
}

// ListApprovedInRange lista aprobados con fecha dentro de [from, to].
// Zeros en from/to significan sin límite por ese extremo.
func (r *ReportRepo) ListApprovedInRange(ctx context.Context, from, to time.Time) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE status = $1`
	args := []any{entity.ReportStatusAprobado}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND fecha >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(" AND fecha <= $%d", len(args))
	}
	query += " ORDER BY created_at ASC"
	return r.list(ctx, query, args...)
}

// ListByAssignment lista los reportes de una asignación.
func (r *ReportRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE assignment_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, assignmentID)
}

// ListByUser lista los reportes de un consultor.
func (r *ReportRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *ReportRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Report, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var rep entity.Report
	err := row.Scan(
		&rep.ID, &rep.UserID, &rep.AssignmentID, &rep.AssignmentType, &rep.CompanyID, &rep.ModuleID,
		&rep.Descripcion, &rep.Horas, &rep.Fecha, &rep.Status, &rep.Feedback,
		&rep.CreatedAt, &rep.UpdatedAt, &rep.ResubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
