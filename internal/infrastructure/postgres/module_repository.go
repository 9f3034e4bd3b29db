package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
)

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

// ModuleRepo implementación del puerto ModuleRepository sobre PostgreSQL.
type ModuleRepo struct {
	pool *pgxpool.Pool
}

// NewModuleRepository construye el adaptador de persistencia para módulos funcionales.
func NewModuleRepository(pool *pgxpool.Pool) *ModuleRepo {
	return &ModuleRepo{pool: pool}
}

func (r *ModuleRepo) Create(m *entity.Module) error {
	query := `
		INSERT INTO modules (id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		m.ID, m.Name, m.Description, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert module: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ModuleRepo) GetByID(id string) (*entity.Module, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM modules WHERE id = $1`
	var m entity.Module
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return &m, nil
}

func (r *ModuleRepo) Update(m *entity.Module) error {
	query := `
		UPDATE modules SET name = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		m.ID, m.Name, m.Description, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update module: %w", err)
	}
	return nil
}

func (r *ModuleRepo) List(limit, offset int) ([]*entity.Module, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM modules ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var list []*entity.Module
	for rows.Next() {
		var m entity.Module
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *ModuleRepo) Deactivate(id string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE modules SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate module: %w", err)
	}
	return nil
}
