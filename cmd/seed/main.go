// seed crea datos de ejemplo para desarrollo: dos usuarios (ADMIN y STAFF),
// un catálogo pequeño de vestidos y una renta y una venta consistentes con
// la máquina de estados.
//
// Uso: go run ./cmd/seed
// Es idempotente: si el admin ya existe, no hace nada.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/boutique-api/internal/application/dto"
	"github.com/tu-usuario/boutique-api/internal/application/ledger"
	"github.com/tu-usuario/boutique-api/internal/application/usecase"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
	"github.com/tu-usuario/boutique-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/boutique-api/pkg/config"
)

const adminEmail = "admin@boutique.local"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()

	if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
		fail("migraciones: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	dressRepo := postgres.NewDressRepository(pool)
	rentalRepo := postgres.NewRentalRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	userUC := usecase.NewUserUseCase(userRepo, rentalRepo, saleRepo)
	dressUC := usecase.NewDressUseCase(dressRepo, rentalRepo, saleRepo)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, userRepo, rentalRepo, saleRepo)

	if existing, err := userRepo.GetByEmail(adminEmail); err != nil {
		fail("consultar admin: %v", err)
	} else if existing != nil {
		fmt.Println("seed: el admin ya existe, nada que hacer")
		return
	}

	admin, err := userUC.Create(dto.CreateUserRequest{
		Name:     "Administradora",
		Email:    adminEmail,
		Password: "admin123",
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		fail("crear admin: %v", err)
	}
	staff, err := userUC.Create(dto.CreateUserRequest{
		Name:     "Vendedora",
		Email:    "staff@boutique.local",
		Password: "staff123",
		Role:     entity.RoleStaff,
	})
	if err != nil {
		fail("crear staff: %v", err)
	}

	dresses := []dto.CreateDressRequest{
		{Name: "Vestido de gala azul", Size: "M", Color: "Azul", Price: dec("1500.00"), RentalPrice: dec("250.00")},
		{Name: "Vestido de cóctel rojo", Size: "S", Color: "Rojo", Price: dec("980.00"), RentalPrice: dec("180.00")},
		{Name: "Vestido de novia clásico", Size: "M", Color: "Blanco", Price: dec("4200.00"), RentalPrice: dec("600.00")},
		{Name: "Vestido largo esmeralda", Size: "L", Color: "Verde", Price: dec("1750.00"), RentalPrice: dec("300.00")},
	}
	created := make([]*dto.DressResponse, 0, len(dresses))
	for _, d := range dresses {
		out, err := dressUC.Create(d)
		if err != nil {
			fail("crear vestido %q: %v", d.Name, err)
		}
		created = append(created, out)
	}

	// Una renta abierta sobre el primer vestido (queda RENTADO)
	if _, err := ledgerUC.CreateRental(ctx, staff.ID, dto.CreateRentalRequest{
		ClientName: "María García",
		StartDate:  "2026-09-05",
		EndDate:    "2026-09-08",
		Price:      dec("250.00"),
		DressID:    created[0].ID,
	}); err != nil {
		fail("crear renta: %v", err)
	}

	// Una venta sobre el segundo vestido (queda VENDIDO, terminal)
	if _, err := ledgerUC.CreateSale(ctx, admin.ID, dto.CreateSaleRequest{
		ClientName: "Lucía Fernández",
		Date:       "2026-08-30",
		Price:      dec("980.00"),
		DressID:    created[1].ID,
	}); err != nil {
		fail("crear venta: %v", err)
	}

	fmt.Printf("seed: %d usuarios, %d vestidos, 1 renta, 1 venta\n", 2, len(created))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
