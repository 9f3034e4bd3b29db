package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación de AssignmentRepository sobre PostgreSQL
// (usable con pool o tx). Los tres tipos de asignación viven en una sola tabla
// etiquetada por kind.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `
	id, kind, consultor_id, company_id, module_id,
	support_id, project_id, linked_support_id, descripcion,
	tarifa_consultor, tarifa_cliente, is_active, created_at`

// Create persiste una asignación.
func (r *AssignmentRepo) Create(ctx context.Context, a *entity.Assignment) error {
	query := `
		INSERT INTO assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Kind, a.ConsultorID, a.CompanyID, a.ModuleID,
		nullable(a.SupportID), nullable(a.ProjectID), a.LinkedSupportID, a.Descripcion,
		a.TarifaConsultor, a.TarifaCliente, a.IsActive, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación por ID. Devuelve (nil, nil) si no existe.
func (r *AssignmentRepo) GetByID(ctx context.Context, id string) (*entity.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`
	a, err := scanAssignment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// Delete elimina físicamente la asignación. La entrada de tarifario pareada se
// borra en la misma transacción desde el registro.
func (r *AssignmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// ListByConsultor lista las asignaciones activas de un consultor.
func (r *AssignmentRepo) ListByConsultor(ctx context.Context, consultorID string) ([]*entity.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments WHERE consultor_id = $1 AND is_active = true
		ORDER BY created_at DESC`
	return r.list(ctx, query, consultorID)
}

// ListByCompany lista las asignaciones activas de una empresa cliente.
func (r *AssignmentRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments WHERE company_id = $1 AND is_active = true
		ORDER BY created_at DESC`
	return r.list(ctx, query, companyID)
}

// DeactivateByConsultor desactiva las asignaciones activas de un consultor y
// devuelve los ids afectados para la cascada sobre el tarifario.
func (r *AssignmentRepo) DeactivateByConsultor(ctx context.Context, consultorID string) ([]string, error) {
	return r.deactivateWhere(ctx, `consultor_id = $1`, consultorID)
}

// DeactivateByCompany desactiva las asignaciones activas de una empresa.
func (r *AssignmentRepo) DeactivateByCompany(ctx context.Context, companyID string) ([]string, error) {
	return r.deactivateWhere(ctx, `company_id = $1`, companyID)
}

// DeactivateByProject desactiva las asignaciones de proyecto de un proyecto.
func (r *AssignmentRepo) DeactivateByProject(ctx context.Context, projectID string) ([]string, error) {
	return r.deactivateWhere(ctx, `project_id = $1`, projectID)
}

func (r *AssignmentRepo) deactivateWhere(ctx context.Context, where string, arg any) ([]string, error) {
	query := `
		UPDATE assignments SET is_active = false
		WHERE is_active = true AND ` + where + `
		RETURNING id`
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("deactivate assignments: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan assignment id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *AssignmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Assignment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAssignment(row pgx.Row) (*entity.Assignment, error) {
	var a entity.Assignment
	var supportID, projectID *string
	err := row.Scan(
		&a.ID, &a.Kind, &a.ConsultorID, &a.CompanyID, &a.ModuleID,
		&supportID, &projectID, &a.LinkedSupportID, &a.Descripcion,
		&a.TarifaConsultor, &a.TarifaCliente, &a.IsActive, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supportID != nil {
		a.SupportID = *supportID
	}
	if projectID != nil {
		a.ProjectID = *projectID
	}
	return &a, nil
}

// nullable convierte cadena vacía en NULL para columnas opcionales por kind.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
