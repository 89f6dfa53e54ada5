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

// CreateSale registra la venta de un vestido de forma atómica: bloquea la fila,
// verifica que esté DISPONIBLE (un vestido RENTADO no se puede vender y uno
// VENDIDO es terminal), inserta la venta y pasa el vestido a VENDIDO.
func (uc *LedgerUseCase) CreateSale(ctx context.Context, actorUserID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ClientName == "" || in.DressID == "" {
		return nil, domain.ErrInvalidInput
	}
	date := time.Now()
	if in.Date != "" {
		t, err := dto.ParseDate(in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		date = t
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
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		ClientName: in.ClientName,
		Date:       date,
		Price:      in.Price,
		DressID:    in.DressID,
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var dress *entity.Dress
	err = uc.txRunner.Run(ctx, func(
		dressRepo repository.DressRepository,
		_ repository.RentalRepository,
		saleRepo repository.SaleRepository,
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
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		if err := dressRepo.UpdateStatus(d.ID, entity.StatusVendido); err != nil {
			return err
		}
		d.Status = entity.StatusVendido
		dress = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := saleToResponse(sale)
	dressOut := dressToResponse(dress)
	userOut := userToResponse(user)
	out.Dress = &dressOut
	out.User = &userOut
	return &out, nil
}

// RemoveSale siempre falla: una venta es terminal y no existe operación de
// reversa. ErrNotFound si la venta no existe; ErrDressSold en caso contrario.
func (uc *LedgerUseCase) RemoveSale(ctx context.Context, id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	return domain.ErrDressSold
}
