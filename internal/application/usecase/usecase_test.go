package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/boutique-api/internal/application/dto"
	"github.com/tu-usuario/boutique-api/internal/application/usecase"
	"github.com/tu-usuario/boutique-api/internal/domain"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeDressRepo struct {
	dresses map[string]entity.Dress
}

func newFakeDressRepo() *fakeDressRepo {
	return &fakeDressRepo{dresses: map[string]entity.Dress{}}
}

func (r *fakeDressRepo) Create(d *entity.Dress) error {
	r.dresses[d.ID] = *d
	return nil
}

func (r *fakeDressRepo) GetByID(id string) (*entity.Dress, error) {
	d, ok := r.dresses[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDressRepo) GetByIDForUpdate(id string) (*entity.Dress, error) {
	return r.GetByID(id)
}

func (r *fakeDressRepo) List(limit, offset int) ([]*entity.Dress, error) {
	out := make([]*entity.Dress, 0, len(r.dresses))
	for _, d := range r.dresses {
		d := d
		out = append(out, &d)
	}
	return out, nil
}

func (r *fakeDressRepo) Update(d *entity.Dress) error {
	r.dresses[d.ID] = *d
	return nil
}

func (r *fakeDressRepo) UpdateStatus(id, status string) error {
	d, ok := r.dresses[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	r.dresses[id] = d
	return nil
}

func (r *fakeDressRepo) Delete(id string) error {
	delete(r.dresses, id)
	return nil
}

// fakeRefRepo responde a los checks de existencia de rentas y ventas.
type fakeRefRepo struct {
	byDress map[string]bool
	byUser  map[string]bool
}

func newFakeRefRepo() *fakeRefRepo {
	return &fakeRefRepo{byDress: map[string]bool{}, byUser: map[string]bool{}}
}

func (r *fakeRefRepo) Create(*entity.Rental) error                   { return nil }
func (r *fakeRefRepo) GetByID(string) (*entity.Rental, error)        { return nil, nil }
func (r *fakeRefRepo) GetDetailedByID(string) (*entity.RentalDetail, error) {
	return nil, nil
}
func (r *fakeRefRepo) ListDetailed(int, int) ([]*entity.RentalDetail, error) {
	return nil, nil
}
func (r *fakeRefRepo) Update(*entity.Rental) error              { return nil }
func (r *fakeRefRepo) Delete(string) error                      { return nil }
func (r *fakeRefRepo) CountOpenByDress(string, string) (int, error) { return 0, nil }
func (r *fakeRefRepo) ExistsByDress(dressID string) (bool, error) {
	return r.byDress[dressID], nil
}
func (r *fakeRefRepo) ExistsByUser(userID string) (bool, error) {
	return r.byUser[userID], nil
}

// fakeSaleRefRepo igual que fakeRefRepo pero para el puerto de ventas.
type fakeSaleRefRepo struct {
	byDress map[string]bool
	byUser  map[string]bool
}

func newFakeSaleRefRepo() *fakeSaleRefRepo {
	return &fakeSaleRefRepo{byDress: map[string]bool{}, byUser: map[string]bool{}}
}

func (r *fakeSaleRefRepo) Create(*entity.Sale) error            { return nil }
func (r *fakeSaleRefRepo) GetByID(string) (*entity.Sale, error) { return nil, nil }
func (r *fakeSaleRefRepo) GetDetailedByID(string) (*entity.SaleDetail, error) {
	return nil, nil
}
func (r *fakeSaleRefRepo) ListDetailed(int, int) ([]*entity.SaleDetail, error) {
	return nil, nil
}
func (r *fakeSaleRefRepo) Update(*entity.Sale) error { return nil }
func (r *fakeSaleRefRepo) ExistsByDress(dressID string) (bool, error) {
	return r.byDress[dressID], nil
}
func (r *fakeSaleRefRepo) ExistsByUser(userID string) (bool, error) {
	return r.byUser[userID], nil
}

type fakeUserRepo struct {
	users map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// DressUseCase — máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func seedDress(repo *fakeDressRepo, id, status string) {
	now := time.Now()
	repo.dresses[id] = entity.Dress{
		ID:          id,
		Name:        "Vestido de cóctel rojo",
		Size:        "S",
		Color:       "Rojo",
		Price:       decimal.NewFromInt(980),
		RentalPrice: decimal.NewFromInt(180),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newDressUC() (*usecase.DressUseCase, *fakeDressRepo, *fakeRefRepo, *fakeSaleRefRepo) {
	dressRepo := newFakeDressRepo()
	rentalRepo := newFakeRefRepo()
	saleRepo := newFakeSaleRefRepo()
	return usecase.NewDressUseCase(dressRepo, rentalRepo, saleRepo), dressRepo, rentalRepo, saleRepo
}

func TestDressCreate_SinStatus_QuedaDisponible(t *testing.T) {
	uc, _, _, _ := newDressUC()

	out, err := uc.Create(dto.CreateDressRequest{
		Name:        "Vestido largo esmeralda",
		Size:        "L",
		Color:       "Verde",
		Price:       decimal.NewFromInt(1750),
		RentalPrice: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDisponible, out.Status)
	assert.NotEmpty(t, out.ID)
}

func TestDressCreate_StatusInvalido_RetornaInvalidInput(t *testing.T) {
	uc, _, _, _ := newDressUC()

	_, err := uc.Create(dto.CreateDressRequest{Name: "X", Status: "PLANCHADO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDressSetStatus_DisponibleARentado(t *testing.T) {
	uc, repo, _, _ := newDressUC()
	seedDress(repo, "d-1", entity.StatusDisponible)

	out, err := uc.SetStatus("d-1", entity.StatusRentado)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRentado, out.Status)
	assert.Equal(t, entity.StatusRentado, repo.dresses["d-1"].Status)
}

func TestDressSetStatus_VendidoEsTerminal(t *testing.T) {
	uc, repo, _, _ := newDressUC()
	seedDress(repo, "d-1", entity.StatusVendido)

	_, err := uc.SetStatus("d-1", entity.StatusDisponible)
	assert.ErrorIs(t, err, domain.ErrDressSold,
		"un vestido VENDIDO no admite ninguna transición")
	assert.Equal(t, entity.StatusVendido, repo.dresses["d-1"].Status)

	_, err = uc.SetStatus("d-1", entity.StatusRentado)
	assert.ErrorIs(t, err, domain.ErrDressSold)
}

func TestDressSetStatus_Identidad_EsNoOp(t *testing.T) {
	uc, repo, _, _ := newDressUC()
	seedDress(repo, "d-1", entity.StatusVendido)

	// Mismo estado: no hay transición que validar, tampoco sobre VENDIDO
	out, err := uc.SetStatus("d-1", entity.StatusVendido)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusVendido, out.Status)
}

func TestDressSetStatus_StatusDesconocido_RetornaInvalidInput(t *testing.T) {
	uc, repo, _, _ := newDressUC()
	seedDress(repo, "d-1", entity.StatusDisponible)

	_, err := uc.SetStatus("d-1", "REGALADO")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDressSetStatus_Inexistente_RetornaNotFound(t *testing.T) {
	uc, _, _, _ := newDressUC()

	_, err := uc.SetStatus("d-404", entity.StatusRentado)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDressUpdate_CambioDeStatusPasaPorLaMaquina(t *testing.T) {
	uc, repo, _, _ := newDressUC()
	seedDress(repo, "d-1", entity.StatusVendido)

	nuevo := entity.StatusDisponible
	_, err := uc.Update("d-1", dto.UpdateDressRequest{Status: &nuevo})
	assert.ErrorIs(t, err, domain.ErrDressSold)
}

func TestDressDelete_ConRentas_RetornaReferenced(t *testing.T) {
	uc, repo, rentalRepo, _ := newDressUC()
	seedDress(repo, "d-1", entity.StatusDisponible)
	rentalRepo.byDress["d-1"] = true

	err := uc.Delete("d-1")
	assert.ErrorIs(t, err, domain.ErrDressReferenced)
	assert.Contains(t, repo.dresses, "d-1", "el vestido referenciado no se borra")
}

func TestDressDelete_ConVentas_RetornaReferenced(t *testing.T) {
	uc, repo, _, saleRepo := newDressUC()
	seedDress(repo, "d-1", entity.StatusVendido)
	saleRepo.byDress["d-1"] = true

	err := uc.Delete("d-1")
	assert.ErrorIs(t, err, domain.ErrDressReferenced)
}

func TestDressDelete_SinReferencias_Elimina(t *testing.T) {
	uc, repo, _, _ := newDressUC()
	seedDress(repo, "d-1", entity.StatusDisponible)

	require.NoError(t, uc.Delete("d-1"))
	assert.NotContains(t, repo.dresses, "d-1")
}

// ──────────────────────────────────────────────────────────────────────────────
// UserUseCase
// ──────────────────────────────────────────────────────────────────────────────

func newUserUC() (*usecase.UserUseCase, *fakeUserRepo, *fakeRefRepo, *fakeSaleRefRepo) {
	userRepo := newFakeUserRepo()
	rentalRepo := newFakeRefRepo()
	saleRepo := newFakeSaleRefRepo()
	return usecase.NewUserUseCase(userRepo, rentalRepo, saleRepo), userRepo, rentalRepo, saleRepo
}

func TestUserCreate_HasheaPasswordYDefaultStaff(t *testing.T) {
	uc, repo, _, _ := newUserUC()

	out, err := uc.Create(dto.CreateUserRequest{
		Email:    "nueva@boutique.local",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, out.Role, "sin rol explícito el default es STAFF")
	assert.Equal(t, "nueva@boutique.local", out.Name, "sin nombre se usa el email")

	stored := repo.users[out.ID]
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestUserCreate_EmailDuplicado_RetornaEmailExists(t *testing.T) {
	uc, _, _, _ := newUserUC()

	_, err := uc.Create(dto.CreateUserRequest{Email: "dup@boutique.local", Password: "abc123"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateUserRequest{Email: "dup@boutique.local", Password: "otra456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserCreate_RolInvalido_RetornaInvalidInput(t *testing.T) {
	uc, _, _, _ := newUserUC()

	_, err := uc.Create(dto.CreateUserRequest{Email: "x@boutique.local", Password: "abc123", Role: "GERENTE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_PasswordPresente_RotaElHash(t *testing.T) {
	uc, repo, _, _ := newUserUC()

	created, err := uc.Create(dto.CreateUserRequest{Email: "rota@boutique.local", Password: "vieja123"})
	require.NoError(t, err)
	oldHash := repo.users[created.ID].PasswordHash

	nueva := "nueva456"
	_, err = uc.Update(created.ID, dto.UpdateUserRequest{Password: &nueva})
	require.NoError(t, err)

	newHash := repo.users[created.ID].PasswordHash
	assert.NotEqual(t, oldHash, newHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("nueva456")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("vieja123")),
		"el hash anterior deja de ser válido")
}

func TestUserDelete_ConRentas_RetornaReferenced(t *testing.T) {
	uc, repo, rentalRepo, _ := newUserUC()

	created, err := uc.Create(dto.CreateUserRequest{Email: "ref@boutique.local", Password: "abc123"})
	require.NoError(t, err)
	rentalRepo.byUser[created.ID] = true

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrUserReferenced)
	assert.Contains(t, repo.users, created.ID)
}

func TestUserDelete_ConVentas_RetornaReferenced(t *testing.T) {
	uc, _, _, saleRepo := newUserUC()

	created, err := uc.Create(dto.CreateUserRequest{Email: "ref2@boutique.local", Password: "abc123"})
	require.NoError(t, err)
	saleRepo.byUser[created.ID] = true

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrUserReferenced)
}

func TestUserDelete_SinReferencias_Elimina(t *testing.T) {
	uc, repo, _, _ := newUserUC()

	created, err := uc.Create(dto.CreateUserRequest{Email: "libre@boutique.local", Password: "abc123"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.NotContains(t, repo.users, created.ID)
}
