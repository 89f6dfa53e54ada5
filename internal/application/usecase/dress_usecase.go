package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/boutique-api/internal/application/dto"
	"github.com/tu-usuario/boutique-api/internal/domain"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
	"github.com/tu-usuario/boutique-api/internal/domain/repository"
)

// DressUseCase registro de vestidos: CRUD más la máquina de estados.
// El status del vestido es la única fuente de verdad de su disponibilidad;
// VENDIDO es terminal y la eliminación respeta integridad referencial.
type DressUseCase struct {
	dressRepo  repository.DressRepository
	rentalRepo repository.RentalRepository
	saleRepo   repository.SaleRepository
}

// NewDressUseCase construye el caso de uso.
func NewDressUseCase(dressRepo repository.DressRepository, rentalRepo repository.RentalRepository, saleRepo repository.SaleRepository) *DressUseCase {
	return &DressUseCase{dressRepo: dressRepo, rentalRepo: rentalRepo, saleRepo: saleRepo}
}

// Create registra un vestido. Status vacío = DISPONIBLE.
func (uc *DressUseCase) Create(in dto.CreateDressRequest) (*dto.DressResponse, error) {
	status := in.Status
	if status == "" {
		status = entity.StatusDisponible
	}
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	dress := &entity.Dress{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Size:        in.Size,
		Color:       in.Color,
		Price:       in.Price,
		RentalPrice: in.RentalPrice,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.dressRepo.Create(dress); err != nil {
		return nil, err
	}
	out := dressToResponse(dress)
	return &out, nil
}

// GetByID obtiene un vestido. nil si no existe (el handler responde 404).
func (uc *DressUseCase) GetByID(id string) (*dto.DressResponse, error) {
	dress, err := uc.dressRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dress == nil {
		return nil, nil
	}
	out := dressToResponse(dress)
	return &out, nil
}

// List lista vestidos con paginación.
func (uc *DressUseCase) List(limit, offset int) (*dto.DressListResponse, error) {
	dresses, err := uc.dressRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DressResponse, 0, len(dresses))
	for _, d := range dresses {
		items = append(items, dressToResponse(d))
	}
	return &dto.DressListResponse{Items: items, Limit: limit, Offset: offset}, nil
}

// Update actualiza campos de un vestido. Un cambio de status pasa por la misma
// validación de transiciones que SetStatus. Devuelve nil si no existe.
func (uc *DressUseCase) Update(id string, in dto.UpdateDressRequest) (*dto.DressResponse, error) {
	dress, err := uc.dressRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dress == nil {
		return nil, nil
	}
	if in.Status != nil && *in.Status != dress.Status {
		if err := checkTransition(dress.Status, *in.Status); err != nil {
			return nil, err
		}
		dress.Status = *in.Status
	}
	if in.Name != nil {
		dress.Name = *in.Name
	}
	if in.Size != nil {
		dress.Size = *in.Size
	}
	if in.Color != nil {
		dress.Color = *in.Color
	}
	if in.Price != nil {
		dress.Price = *in.Price
	}
	if in.RentalPrice != nil {
		dress.RentalPrice = *in.RentalPrice
	}
	dress.UpdatedAt = time.Now()
	if err := uc.dressRepo.Update(dress); err != nil {
		return nil, err
	}
	out := dressToResponse(dress)
	return &out, nil
}

// SetStatus cambia el estado de un vestido aplicando la máquina de estados:
// VENDIDO es terminal (ErrDressSold); DISPONIBLE <-> RENTADO es libre.
func (uc *DressUseCase) SetStatus(id, status string) (*dto.DressResponse, error) {
	dress, err := uc.dressRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dress == nil {
		return nil, domain.ErrNotFound
	}
	if dress.Status != status {
		if err := checkTransition(dress.Status, status); err != nil {
			return nil, err
		}
		if err := uc.dressRepo.UpdateStatus(id, status); err != nil {
			return nil, err
		}
		dress.Status = status
	}
	out := dressToResponse(dress)
	return &out, nil
}

// Delete elimina un vestido. Falla con ErrDressReferenced si alguna renta o
// venta lo referencia; el FK en DB con ON DELETE RESTRICT respalda esta regla.
func (uc *DressUseCase) Delete(id string) error {
	dress, err := uc.dressRepo.GetByID(id)
	if err != nil {
		return err
	}
	if dress == nil {
		return domain.ErrNotFound
	}
	hasRentals, err := uc.rentalRepo.ExistsByDress(id)
	if err != nil {
		return err
	}
	if hasRentals {
		return domain.ErrDressReferenced
	}
	hasSales, err := uc.saleRepo.ExistsByDress(id)
	if err != nil {
		return err
	}
	if hasSales {
		return domain.ErrDressReferenced
	}
	return uc.dressRepo.Delete(id)
}

// checkTransition valida una transición de estado distinta a la identidad.
func checkTransition(from, to string) error {
	if !entity.ValidStatus(to) {
		return domain.ErrInvalidInput
	}
	if from == entity.StatusVendido {
		return domain.ErrDressSold
	}
	if !entity.CanTransition(from, to) {
		return domain.ErrConflict
	}
	return nil
}

func dressToResponse(d *entity.Dress) dto.DressResponse {
	return dto.DressResponse{
		ID:          d.ID,
		Name:        d.Name,
		Size:        d.Size,
		Color:       d.Color,
		Price:       d.Price,
		RentalPrice: d.RentalPrice,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
