package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/domain/repository"
)

var _ repository.SupportRepository = (*SupportRepo)(nil)

// SupportRepo implementación del puerto SupportRepository sobre PostgreSQL.
type SupportRepo struct {
	pool *pgxpool.Pool
}

// NewSupportRepository construye el adaptador de persistencia para soportes.
func NewSupportRepository(pool *pgxpool.Pool) *SupportRepo {
	return &SupportRepo{pool: pool}
}

func (r *SupportRepo) Create(s *entity.Support) error {
	query := `
		INSERT INTO supports (id, name, description, category, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		s.ID, s.Name, s.Description, s.Category, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert support: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SupportRepo) GetByID(id string) (*entity.Support, error) {
	query := `
		SELECT id, name, description, category, is_active, created_at, updated_at
		FROM supports WHERE id = $1`
	var s entity.Support
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.Category, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get support: %w", err)
	}
	return &s, nil
}

func (r *SupportRepo) Update(s *entity.Support) error {
	query := `
		UPDATE supports SET name = $2, description = $3, category = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		s.ID, s.Name, s.Description, s.Category, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update support: %w", err)
	}
	return nil
}

func (r *SupportRepo) List(limit, offset int) ([]*entity.Support, error) {
	query := `
		SELECT id, name, description, category, is_active, created_at, updated_at
		FROM supports ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supports: %w", err)
	}
	defer rows.Close()

	var list []*entity.Support
	for rows.Next() {
		var s entity.Support
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan support: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SupportRepo) Deactivate(id string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE supports SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate support: %w", err)
	}
	return nil
}
