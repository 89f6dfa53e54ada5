package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/boutique-api/internal/application/dto"
	"github.com/tu-usuario/boutique-api/internal/domain"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
	"github.com/tu-usuario/boutique-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost costo usado al hashear contraseñas.
const bcryptCost = 10

// UserUseCase CRUD de usuarios. La eliminación respeta integridad referencial:
// un usuario con rentas o ventas registradas no se puede borrar.
type UserUseCase struct {
	userRepo   repository.UserRepository
	rentalRepo repository.RentalRepository
	saleRepo   repository.SaleRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, rentalRepo repository.RentalRepository, saleRepo repository.SaleRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, rentalRepo: rentalRepo, saleRepo: saleRepo}
}

// Create crea un usuario: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	out := userToResponse(user)
	return &out, nil
}

// GetByID obtiene un usuario. nil si no existe (el handler responde 404).
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	out := userToResponse(user)
	return &out, nil
}

// List lista usuarios con paginación (sin hash de contraseña).
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, userToResponse(u))
	}
	return &dto.UserListResponse{Items: items, Limit: limit, Offset: offset}, nil
}

// Update actualiza campos de un usuario. Password presente = rotación (nuevo hash).
// El ID es inmutable. Devuelve nil si el usuario no existe.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Email != nil && *in.Email != user.Email {
		existing, err := uc.userRepo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	out := userToResponse(user)
	return &out, nil
}

// Delete elimina un usuario. Falla con ErrUserReferenced si tiene rentas o
// ventas asociadas: los registros históricos no se huerfanizan.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	hasRentals, err := uc.rentalRepo.ExistsByUser(id)
	if err != nil {
		return err
	}
	if hasRentals {
		return domain.ErrUserReferenced
	}
	hasSales, err := uc.saleRepo.ExistsByUser(id)
	if err != nil {
		return err
	}
	if hasSales {
		return domain.ErrUserReferenced
	}
	return uc.userRepo.Delete(id)
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
