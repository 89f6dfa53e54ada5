package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/boutique-api/internal/application/dto"
	"github.com/tu-usuario/boutique-api/internal/domain"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
	"github.com/tu-usuario/boutique-api/internal/domain/repository"
)

// CreateRental registra la renta de un vestido de forma atómica: dentro de una
// transacción bloquea la fila del vestido (SELECT FOR UPDATE), verifica que
// esté DISPONIBLE, inserta la renta y pasa el vestido a RENTADO. Dos peticiones
// concurrentes sobre el mismo vestido se serializan y la segunda recibe
// ErrDressNotAvailable. actorUserID viene del contexto de identidad y se usa
// cuando el DTO no trae user_id.
func (uc *LedgerUseCase) CreateRental(ctx context.Context, actorUserID string, in dto.CreateRentalRequest) (*dto.RentalResponse, error) {
	if in.ClientName == "" || in.DressID == "" {
		return nil, domain.ErrInvalidInput
	}
	startDate, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	endDate, err := dto.ParseDate(in.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if endDate.Before(startDate) {
		return nil, domain.ErrInvalidInput
	}
	userID := in.UserID
	if userID == "" {
		userID = actorUserID
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	rental := &entity.Rental{
		ID:         uuid.New().String(),
		ClientName: in.ClientName,
		StartDate:  startDate,
		EndDate:    endDate,
		Price:      in.Price,
		DressID:    in.DressID,
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var dress *entity.Dress
	err = uc.txRunner.Run(ctx, func(
		dressRepo repository.DressRepository,
		rentalRepo repository.RentalRepository,
		_ repository.SaleRepository,
	) error {
		d, err := dressRepo.GetByIDForUpdate(in.DressID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status == entity.StatusVendido {
			return domain.ErrDressSold
		}
		if !d.Disponible() {
			return domain.ErrDressNotAvailable
		}
		if err := rentalRepo.Create(rental); err != nil {
			return err
		}
		if err := dressRepo.UpdateStatus(d.ID, entity.StatusRentado); err != nil {
			return err
		}
		d.Status = entity.StatusRentado
		dress = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := rentalToResponse(rental)
	dressOut := dressToResponse(dress)
	userOut := userToResponse(user)
	out.Dress = &dressOut
	out.User = &userOut
	return &out, nil
}

// ReturnRental cierra una renta abierta: marca ReturnedAt y devuelve el vestido
// a DISPONIBLE si ninguna otra renta abierta lo referencia. Atómico.
func (uc *LedgerUseCase) ReturnRental(ctx context.Context, id string) (*dto.RentalResponse, error) {
	var rental *entity.Rental
	err := uc.txRunner.Run(ctx, func(
		dressRepo repository.DressRepository,
		rentalRepo repository.RentalRepository,
		_ repository.SaleRepository,
	) error {
		r, err := rentalRepo.GetByID(id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if !r.Open() {
			return domain.ErrRentalClosed
		}
		now := time.Now()
		r.ReturnedAt = &now
		r.UpdatedAt = now
		if err := rentalRepo.Update(r); err != nil {
			return err
		}
		if err := uc.releaseDress(dressRepo, rentalRepo, r.DressID, r.ID); err != nil {
			return err
		}
		rental = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := rentalToResponse(rental)
	return &out, nil
}

// RemoveRental cancela una renta: elimina la fila y restaura DISPONIBLE si el
// vestido queda sin rentas abiertas. ErrNotFound si la renta no existe.
func (uc *LedgerUseCase) RemoveRental(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		dressRepo repository.DressRepository,
		rentalRepo repository.RentalRepository,
		_ repository.SaleRepository,
	) error {
		r, err := rentalRepo.GetByID(id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if err := rentalRepo.Delete(id); err != nil {
			return err
		}
		return uc.releaseDress(dressRepo, rentalRepo, r.DressID, r.ID)
	})
}

// releaseDress pasa el vestido a DISPONIBLE cuando está RENTADO y no le queda
// ninguna otra renta abierta. Un vestido VENDIDO no se toca: estado terminal.
func (uc *LedgerUseCase) releaseDress(
	dressRepo repository.DressRepository,
	rentalRepo repository.RentalRepository,
	dressID, excludeRentalID string,
) error {
	d, err := dressRepo.GetByIDForUpdate(dressID)
	if err != nil {
		return err
	}
	if d == nil || d.Status != entity.StatusRentado {
		return nil
	}
	open, err := rentalRepo.CountOpenByDress(dressID, excludeRentalID)
	if err != nil {
		return err
	}
	if open > 0 {
		return nil
	}
	return dressRepo.UpdateStatus(dressID, entity.StatusDisponible)
}
