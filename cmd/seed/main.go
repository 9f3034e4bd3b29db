// seed crea los datos mínimos para levantar un entorno local: un usuario
// administrador, un consultor de prueba y un catálogo de ejemplo (empresa,
// soporte y módulo). Es idempotente: los registros ya existentes se omiten.
//
// Uso: go run ./cmd/seed
// La contraseña del admin se toma de SEED_ADMIN_PASSWORD (default "admin123").
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/consultoria-pro/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	companies := postgres.NewCompanyRepository(pool)
	supports := postgres.NewSupportRepository(pool)
	modules := postgres.NewModuleRepository(pool)

	now := time.Now()

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hashear contraseña: %v\n", err)
		os.Exit(1)
	}

	seedUsers := []*entity.User{
		{
			ID:           "admin",
			Name:         "Administrador",
			Email:        "admin@consultoria.local",
			PasswordHash: string(hash),
			Role:         entity.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "consultor1",
			Name:         "Consultor Demo",
			Email:        "consultor@consultoria.local",
			PasswordHash: string(hash),
			Role:         entity.RoleConsultor,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	for _, u := range seedUsers {
		if err := users.Create(u); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				fmt.Printf("Usuario %s ya existe, omitido\n", u.ID)
				continue
			}
			fmt.Fprintf(os.Stderr, "Crear usuario %s: %v\n", u.ID, err)
			os.Exit(1)
		}
		fmt.Printf("Usuario %s creado\n", u.ID)
	}

	company := &entity.Company{
		ID:        "emp_demo",
		Name:      "Empresa Demo S.A.",
		Status:    "active",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := companies.Create(company); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		fmt.Fprintf(os.Stderr, "Crear empresa demo: %v\n", err)
		os.Exit(1)
	}

	support := &entity.Support{
		ID:        "sop_demo",
		Name:      "Soporte Funcional",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := supports.Create(support); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		fmt.Fprintf(os.Stderr, "Crear soporte demo: %v\n", err)
		os.Exit(1)
	}

	module := &entity.Module{
		ID:        "mod_demo",
		Name:      "Finanzas",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := modules.Create(module); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		fmt.Fprintf(os.Stderr, "Crear módulo demo: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Seed completado")
}
