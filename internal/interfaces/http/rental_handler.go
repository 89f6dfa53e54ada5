package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/boutique-api/internal/application/dto"
	"github.com/tu-usuario/boutique-api/internal/application/ledger"
	"github.com/tu-usuario/boutique-api/internal/domain"
)

// RentalHandler maneja las peticiones HTTP para rentas (protegido).
type RentalHandler struct {
	uc *ledger.LedgerUseCase
}

// NewRentalHandler construye el handler.
func NewRentalHandler(uc *ledger.LedgerUseCase) *RentalHandler {
	return &RentalHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar renta de un vestido
// @Tags         rentals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRentalRequest  true  "Datos de la renta"
// @Success      201   {object}  dto.RentalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rentals [post]
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRentalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateRental(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapLedgerError(c, err, "renta")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar rentas (incluye vestido y usuario)
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.RentalListResponse
// @Router       /api/rentals [get]
func (h *RentalHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListRentals(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener renta por ID
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la renta"
// @Success      200  {object}  dto.RentalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id} [get]
func (h *RentalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetRental(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "renta no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar renta (cliente, fechas, precio)
// @Tags         rentals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la renta"
// @Param        body  body  dto.UpdateRentalRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.RentalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rentals/{id} [patch]
func (h *RentalHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRentalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateRental(c.Params("id"), in)
	if err != nil {
		return mapLedgerError(c, err, "renta")
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver renta (el vestido vuelve a DISPONIBLE)
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la renta"
// @Success      200  {object}  dto.RentalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/return [post]
func (h *RentalHandler) Return(c *fiber.Ctx) error {
	out, err := h.uc.ReturnRental(c.Context(), c.Params("id"))
	if err != nil {
		return mapLedgerError(c, err, "renta")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Cancelar renta (elimina la fila; restaura DISPONIBLE si aplica)
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la renta"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id} [delete]
func (h *RentalHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.RemoveRental(c.Context(), c.Params("id")); err != nil {
		return mapLedgerError(c, err, "renta")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// mapLedgerError traduce errores de dominio del ledger a códigos HTTP.
func mapLedgerError(c *fiber.Ctx, err error, recurso string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: recurso + " o vestido no encontrado"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrDressNotAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DRESS_NOT_AVAILABLE", Message: "el vestido no está disponible"})
	case errors.Is(err, domain.ErrDressSold):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DRESS_SOLD", Message: "el vestido está vendido; estado terminal"})
	case errors.Is(err, domain.ErrRentalClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RENTAL_CLOSED", Message: "la renta ya fue devuelta"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
