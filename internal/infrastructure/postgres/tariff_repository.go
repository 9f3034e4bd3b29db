package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
)

var _ repository.TariffRepository = (*TariffRepo)(nil)

// TariffRepo implementación de TariffRepository sobre PostgreSQL (usable con
// pool o tx). El tarifario es una proyección derivada de las asignaciones; los
// montos van en NUMERIC y se escanean a decimal vía el codec registrado en el pool.
type TariffRepo struct {
	q Querier
}

// NewTariffRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTariffRepository(q Querier) *TariffRepo {
	return &TariffRepo{q: q}
}

const tariffColumns = `
	id, assignment_id, tipo,
	consultor_id, consultor_nombre, company_id, company_nombre,
	work_unit_id, work_unit_nombre, module_id, module_nombre,
	costo_consultor, costo_cliente, margen, margen_porcentaje,
	is_active, created_at`

// Create persiste una entrada de tarifario. ON CONFLICT sobrescribe: el id se
// deriva del id de asignación, así que reintentos de la sincronización no duplican.
func (r *TariffRepo) Create(ctx context.Context, t *entity.TariffEntry) error {
	query := `
		INSERT INTO tariff_entries (` + tariffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			consultor_nombre = EXCLUDED.consultor_nombre,
			company_nombre = EXCLUDED.company_nombre,
			work_unit_nombre = EXCLUDED.work_unit_nombre,
			module_nombre = EXCLUDED.module_nombre,
			costo_consultor = EXCLUDED.costo_consultor,
			costo_cliente = EXCLUDED.costo_cliente,
			margen = EXCLUDED.margen,
			margen_porcentaje = EXCLUDED.margen_porcentaje,
			is_active = EXCLUDED.is_active`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.AssignmentID, t.Tipo,
		t.ConsultorID, t.ConsultorNombre, t.CompanyID, t.CompanyNombre,
		t.WorkUnitID, t.WorkUnitNombre, t.ModuleID, t.ModuleNombre,
		t.CostoConsultor, t.CostoCliente, t.Margen, t.MargenPorcentaje,
		t.IsActive, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tariff entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID. Devuelve (nil, nil) si no existe.
func (r *TariffRepo) GetByID(ctx context.Context, id string) (*entity.TariffEntry, error) {
	query := `SELECT ` + tariffColumns + ` FROM tariff_entries WHERE id = $1`
	t, err := scanTariff(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tariff entry: %w", err)
	}
	return t, nil
}

// Delete elimina una entrada. Idempotente: una entrada ausente no es un error.
func (r *TariffRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tariff_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tariff entry: %w", err)
	}
	return nil
}

// List devuelve todas las entradas, activas o no (para el escaneo de huérfanas).
func (r *TariffRepo) List(ctx context.Context) ([]*entity.TariffEntry, error) {
	query := `SELECT ` + tariffColumns + ` FROM tariff_entries ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListActive devuelve las entradas activas para la vista del tarifario.
func (r *TariffRepo) ListActive(ctx context.Context) ([]*entity.TariffEntry, error) {
	query := `SELECT ` + tariffColumns + ` FROM tariff_entries WHERE is_active = true ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// DeactivateByAssignmentIDs desactiva las entradas pareadas de las asignaciones
// dadas (cascada de desactivación).
func (r *TariffRepo) DeactivateByAssignmentIDs(ctx context.Context, assignmentIDs []string) error {
	if len(assignmentIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx,
		`UPDATE tariff_entries SET is_active = false WHERE assignment_id = ANY($1)`, assignmentIDs)
	if err != nil {
		return fmt.Errorf("deactivate tariff entries: %w", err)
	}
	return nil
}

func (r *TariffRepo) list(ctx context.Context, query string) ([]*entity.TariffEntry, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tariff entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.TariffEntry
	for rows.Next() {
		t, err := scanTariff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tariff entry: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTariff(row pgx.Row) (*entity.TariffEntry, error) {
	var t entity.TariffEntry
	err := row.Scan(
		&t.ID, &t.AssignmentID, &t.Tipo,
		&t.ConsultorID, &t.ConsultorNombre, &t.CompanyID, &t.CompanyNombre,
		&t.WorkUnitID, &t.WorkUnitNombre, &t.ModuleID, &t.ModuleNombre,
		&t.CostoConsultor, &t.CostoCliente, &t.Margen, &t.MargenPorcentaje,
		&t.IsActive, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
