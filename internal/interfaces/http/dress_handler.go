package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/boutique-api/internal/application/dto"
	"github.com/tu-usuario/boutique-api/internal/application/usecase"
	"github.com/tu-usuario/boutique-api/internal/domain"
)

// DressHandler maneja las peticiones HTTP para el catálogo de vestidos (protegido).
type DressHandler struct {
	uc *usecase.DressUseCase
}

// NewDressHandler construye el handler.
func NewDressHandler(uc *usecase.DressUseCase) *DressHandler {
	return &DressHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar vestido
// @Tags         dresses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDressRequest  true  "Datos del vestido"
// @Success      201   {object}  dto.DressResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dresses [post]
func (h *DressHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDressRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Size == "" || in.Color == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, size y color son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser DISPONIBLE, RENTADO o VENDIDO"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar vestidos
// @Tags         dresses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.DressListResponse
// @Router       /api/dresses [get]
func (h *DressHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener vestido por ID
// @Tags         dresses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vestido"
// @Success      200  {object}  dto.DressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dresses/{id} [get]
func (h *DressHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vestido no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar vestido
// @Tags         dresses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vestido"
// @Param        body  body  dto.UpdateDressRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.DressResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dresses/{id} [put]
func (h *DressHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateDressRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return h.mapStatusError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vestido no encontrado"})
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar estado de un vestido (edición administrativa directa)
// @Tags         dresses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vestido"
// @Param        body  body  dto.SetDressStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.DressResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dresses/{id}/status [patch]
func (h *DressHandler) SetStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.SetDressStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetStatus(id, in.Status)
	if err != nil {
		return h.mapStatusError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar vestido
// @Tags         dresses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vestido"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/dresses/{id} [delete]
func (h *DressHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vestido no encontrado"})
		}
		if errors.Is(err, domain.ErrDressReferenced) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el vestido tiene rentas o ventas asociadas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DressHandler) mapStatusError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vestido no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser DISPONIBLE, RENTADO o VENDIDO"})
	case errors.Is(err, domain.ErrDressSold):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DRESS_SOLD", Message: "un vestido vendido no admite cambios de estado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "transición de estado no permitida"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// pageParams normaliza limit/offset de query (máximo 100 por página).
func pageParams(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
