package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/boutique-api/internal/application/auth"
	"github.com/tu-usuario/boutique-api/internal/application/ledger"
	"github.com/tu-usuario/boutique-api/internal/application/usecase"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	DressUC   *usecase.DressUseCase
	LedgerUC  *ledger.LedgerUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
// /api/auth/login es pública; el resto exige un token válido y un rol permitido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleStaff)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Users: el listado es visible para cualquier rol; el resto solo ADMIN
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", anyRole, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Post("/", adminOnly, userHandler.Create)
	users.Patch("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Dresses (protegido)
	dresses := protected.Group("/dresses", anyRole)
	dressHandler := NewDressHandler(deps.DressUC)
	dresses.Post("/", dressHandler.Create)
	dresses.Get("/", dressHandler.List)
	dresses.Get("/:id", dressHandler.GetByID)
	dresses.Put("/:id", dressHandler.Update)
	dresses.Patch("/:id/status", dressHandler.SetStatus)
	dresses.Delete("/:id", dressHandler.Delete)

	// Rentals (protegido)
	rentals := protected.Group("/rentals", anyRole)
	rentalHandler := NewRentalHandler(deps.LedgerUC)
	rentals.Post("/", rentalHandler.Create)
	rentals.Get("/", rentalHandler.List)
	rentals.Get("/:id", rentalHandler.GetByID)
	rentals.Patch("/:id", rentalHandler.Update)
	rentals.Post("/:id/return", rentalHandler.Return)
	rentals.Delete("/:id", rentalHandler.Delete)

	// Sales (protegido)
	sales := protected.Group("/sales", anyRole)
	saleHandler := NewSaleHandler(deps.LedgerUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Patch("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)
}
