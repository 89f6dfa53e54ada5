package ledger

import (
	"github.com/tu-usuario/boutique-api/internal/application/dto"
	"github.com/tu-usuario/boutique-api/internal/domain"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
	"github.com/tu-usuario/boutique-api/internal/domain/repository"
)

// LedgerUseCase libro de rentas y ventas. Las operaciones que mutan el estado
// de un vestido (crear, devolver, cancelar) corren dentro del TxRunner con la
// fila del vestido bloqueada (SELECT FOR UPDATE); las lecturas y las
// actualizaciones de campos sueltos usan los repos del pool directamente.
type LedgerUseCase struct {
	txRunner   TxRunner
	userRepo   repository.UserRepository
	rentalRepo repository.RentalRepository
	saleRepo   repository.SaleRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, userRepo repository.UserRepository, rentalRepo repository.RentalRepository, saleRepo repository.SaleRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, userRepo: userRepo, rentalRepo: rentalRepo, saleRepo: saleRepo}
}

// ListRentals lista rentas con vestido y usuario incluidos.
func (uc *LedgerUseCase) ListRentals(limit, offset int) (*dto.RentalListResponse, error) {
	details, err := uc.rentalRepo.ListDetailed(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RentalResponse, 0, len(details))
	for _, d := range details {
		items = append(items, rentalDetailToResponse(d))
	}
	return &dto.RentalListResponse{Items: items, Limit: limit, Offset: offset}, nil
}

// GetRental obtiene una renta con vestido y usuario. nil si no existe.
func (uc *LedgerUseCase) GetRental(id string) (*dto.RentalResponse, error) {
	detail, err := uc.rentalRepo.GetDetailedByID(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, nil
	}
	out := rentalDetailToResponse(detail)
	return &out, nil
}

// UpdateRental actualiza campos mutables de una renta (cliente, fechas, precio).
// DressID y UserID no cambian por esta vía. ErrNotFound si la renta no existe.
func (uc *LedgerUseCase) UpdateRental(id string, in dto.UpdateRentalRequest) (*dto.RentalResponse, error) {
	rental, err := uc.rentalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrNotFound
	}
	if in.ClientName != nil {
		rental.ClientName = *in.ClientName
	}
	if in.StartDate != nil {
		t, err := dto.ParseDate(*in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		rental.StartDate = t
	}
	if in.EndDate != nil {
		t, err := dto.ParseDate(*in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		rental.EndDate = t
	}
	if rental.EndDate.Before(rental.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil {
		rental.Price = *in.Price
	}
	if err := uc.rentalRepo.Update(rental); err != nil {
		return nil, err
	}
	out := rentalToResponse(rental)
	return &out, nil
}

// ListSales lista ventas con vestido y usuario incluidos.
func (uc *LedgerUseCase) ListSales(limit, offset int) (*dto.SaleListResponse, error) {
	details, err := uc.saleRepo.ListDetailed(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(details))
	for _, d := range details {
		items = append(items, saleDetailToResponse(d))
	}
	return &dto.SaleListResponse{Items: items, Limit: limit, Offset: offset}, nil
}

// GetSale obtiene una venta con vestido y usuario. nil si no existe.
func (uc *LedgerUseCase) GetSale(id string) (*dto.SaleResponse, error) {
	detail, err := uc.saleRepo.GetDetailedByID(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, nil
	}
	out := saleDetailToResponse(detail)
	return &out, nil
}

// UpdateSale actualiza campos mutables de una venta. ErrNotFound si no existe.
func (uc *LedgerUseCase) UpdateSale(id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if in.ClientName != nil {
		sale.ClientName = *in.ClientName
	}
	if in.Date != nil {
		t, err := dto.ParseDate(*in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		sale.Date = t
	}
	if in.Price != nil {
		sale.Price = *in.Price
	}
	if err := uc.saleRepo.Update(sale); err != nil {
		return nil, err
	}
	out := saleToResponse(sale)
	return &out, nil
}

func rentalToResponse(r *entity.Rental) dto.RentalResponse {
	return dto.RentalResponse{
		ID:         r.ID,
		ClientName: r.ClientName,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Price:      r.Price,
		DressID:    r.DressID,
		UserID:     r.UserID,
		ReturnedAt: r.ReturnedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func rentalDetailToResponse(d *entity.RentalDetail) dto.RentalResponse {
	out := rentalToResponse(&d.Rental)
	dress := dressToResponse(&d.Dress)
	user := userToResponse(&d.User)
	out.Dress = &dress
	out.User = &user
	return out
}

func saleToResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:         s.ID,
		ClientName: s.ClientName,
		Date:       s.Date,
		Price:      s.Price,
		DressID:    s.DressID,
		UserID:     s.UserID,
		CreatedAt:  s.CreatedAt,
	}
}

func saleDetailToResponse(d *entity.SaleDetail) dto.SaleResponse {
	out := saleToResponse(&d.Sale)
	dress := dressToResponse(&d.Dress)
	user := userToResponse(&d.User)
	out.Dress = &dress
	out.User = &user
	return out
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

func userToResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
