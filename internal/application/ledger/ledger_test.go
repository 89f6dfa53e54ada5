package ledger_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/boutique-api/internal/application/dto"
	"github.com/tu-usuario/boutique-api/internal/application/ledger"
	"github.com/tu-usuario/boutique-api/internal/domain"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
	"github.com/tu-usuario/boutique-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore guarda el estado compartido de los fakes. El txRunner serializa las
// transacciones con un mutex y restaura un snapshot si la función falla, para
// reproducir la semántica commit/rollback de PostgreSQL.
type memStore struct {
	dresses map[string]entity.Dress
	rentals map[string]entity.Rental
	sales   map[string]entity.Sale
	users   map[string]entity.User

	failStatusUpdate bool
}

func newMemStore() *memStore {
	return &memStore{
		dresses: map[string]entity.Dress{},
		rentals: map[string]entity.Rental{},
		sales:   map[string]entity.Sale{},
		users:   map[string]entity.User{},
	}
}

type memDressRepo struct{ s *memStore }

func (r *memDressRepo) Create(d *entity.Dress) error {
	r.s.dresses[d.ID] = *d
	return nil
}

func (r *memDressRepo) GetByID(id string) (*entity.Dress, error) {
	d, ok := r.s.dresses[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *memDressRepo) GetByIDForUpdate(id string) (*entity.Dress, error) {
	return r.GetByID(id)
}

func (r *memDressRepo) List(limit, offset int) ([]*entity.Dress, error) {
	out := make([]*entity.Dress, 0, len(r.s.dresses))
	for _, d := range r.s.dresses {
		d := d
		out = append(out, &d)
	}
	return out, nil
}

func (r *memDressRepo) Update(d *entity.Dress) error {
	r.s.dresses[d.ID] = *d
	return nil
}

func (r *memDressRepo) UpdateStatus(id, status string) error {
	if r.s.failStatusUpdate {
		return errors.New("fallo inyectado en update de estado")
	}
	d, ok := r.s.dresses[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	r.s.dresses[id] = d
	return nil
}

func (r *memDressRepo) Delete(id string) error {
	delete(r.s.dresses, id)
	return nil
}

type memRentalRepo struct{ s *memStore }

func (r *memRentalRepo) Create(rent *entity.Rental) error {
	r.s.rentals[rent.ID] = *rent
	return nil
}

func (r *memRentalRepo) GetByID(id string) (*entity.Rental, error) {
	rent, ok := r.s.rentals[id]
	if !ok {
		return nil, nil
	}
	return &rent, nil
}

func (r *memRentalRepo) GetDetailedByID(id string) (*entity.RentalDetail, error) {
	rent, ok := r.s.rentals[id]
	if !ok {
		return nil, nil
	}
	return &entity.RentalDetail{
		Rental: rent,
		Dress:  r.s.dresses[rent.DressID],
		User:   r.s.users[rent.UserID],
	}, nil
}

func (r *memRentalRepo) ListDetailed(limit, offset int) ([]*entity.RentalDetail, error) {
	out := make([]*entity.RentalDetail, 0, len(r.s.rentals))
	for id := range r.s.rentals {
		d, _ := r.GetDetailedByID(id)
		out = append(out, d)
	}
	return out, nil
}

func (r *memRentalRepo) Update(rent *entity.Rental) error {
	if _, ok := r.s.rentals[rent.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.rentals[rent.ID] = *rent
	return nil
}

func (r *memRentalRepo) Delete(id string) error {
	delete(r.s.rentals, id)
	return nil
}

func (r *memRentalRepo) CountOpenByDress(dressID, excludeID string) (int, error) {
	n := 0
	for _, rent := range r.s.rentals {
		if rent.DressID == dressID && rent.ReturnedAt == nil && rent.ID != excludeID {
			n++
		}
	}
	return n, nil
}

func (r *memRentalRepo) ExistsByDress(dressID string) (bool, error) {
	for _, rent := range r.s.rentals {
		if rent.DressID == dressID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRentalRepo) ExistsByUser(userID string) (bool, error) {
	for _, rent := range r.s.rentals {
		if rent.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (r *memSaleRepo) GetDetailedByID(id string) (*entity.SaleDetail, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &entity.SaleDetail{
		Sale:  sale,
		Dress: r.s.dresses[sale.DressID],
		User:  r.s.users[sale.UserID],
	}, nil
}

func (r *memSaleRepo) ListDetailed(limit, offset int) ([]*entity.SaleDetail, error) {
	out := make([]*entity.SaleDetail, 0, len(r.s.sales))
	for id := range r.s.sales {
		d, _ := r.GetDetailedByID(id)
		out = append(out, d)
	}
	return out, nil
}

func (r *memSaleRepo) Update(sale *entity.Sale) error {
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *memSaleRepo) ExistsByDress(dressID string) (bool, error) {
	for _, sale := range r.s.sales {
		if sale.DressID == dressID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSaleRepo) ExistsByUser(userID string) (bool, error) {
	for _, sale := range r.s.sales {
		if sale.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(u *entity.User) error {
	r.s.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	r.s.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.s.users, id)
	return nil
}

// memTxRunner serializa las transacciones y hace rollback por snapshot.
type memTxRunner struct {
	mu sync.Mutex
	s  *memStore
}

func (tx *memTxRunner) Run(ctx context.Context, fn func(
	dressRepo repository.DressRepository,
	rentalRepo repository.RentalRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	snapDresses := cloneMap(tx.s.dresses)
	snapRentals := cloneMap(tx.s.rentals)
	snapSales := cloneMap(tx.s.sales)

	err := fn(&memDressRepo{s: tx.s}, &memRentalRepo{s: tx.s}, &memSaleRepo{s: tx.s})
	if err != nil {
		tx.s.dresses = snapDresses
		tx.s.rentals = snapRentals
		tx.s.sales = snapSales
	}
	return err
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	fixtureUserID  = "00000000-0000-0000-0000-0000000000aa"
	fixtureDressID = "00000000-0000-0000-0000-0000000000bb"
)

func newFixture(t *testing.T, dressStatus string) (*ledger.LedgerUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	now := time.Now()
	s.users[fixtureUserID] = entity.User{
		ID:        fixtureUserID,
		Email:     "staff@boutique.local",
		Name:      "Vendedora",
		Role:      entity.RoleStaff,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.dresses[fixtureDressID] = entity.Dress{
		ID:          fixtureDressID,
		Name:        "Vestido de gala azul",
		Size:        "M",
		Color:       "Azul",
		Price:       decimal.NewFromInt(1500),
		RentalPrice: decimal.NewFromInt(250),
		Status:      dressStatus,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	uc := ledger.NewLedgerUseCase(
		&memTxRunner{s: s},
		&memUserRepo{s: s},
		&memRentalRepo{s: s},
		&memSaleRepo{s: s},
	)
	return uc, s
}

func rentalRequest() dto.CreateRentalRequest {
	return dto.CreateRentalRequest{
		ClientName: "María García",
		StartDate:  "2026-09-05",
		EndDate:    "2026-09-08",
		Price:      decimal.NewFromInt(250),
		DressID:    fixtureDressID,
	}
}

func saleRequest() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		ClientName: "Lucía Fernández",
		Date:       "2026-08-30",
		Price:      decimal.NewFromInt(1500),
		DressID:    fixtureDressID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateRental
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRental_VestidoDisponible_QuedaRentado(t *testing.T) {
	uc, s := newFixture(t, entity.StatusDisponible)

	out, err := uc.CreateRental(context.Background(), fixtureUserID, rentalRequest())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, entity.StatusRentado, s.dresses[fixtureDressID].Status,
		"el vestido debe pasar a RENTADO en la misma operación")
	assert.Len(t, s.rentals, 1)
	assert.Equal(t, fixtureUserID, out.UserID, "sin user_id en el DTO se usa el actor")
	require.NotNil(t, out.Dress)
	assert.Equal(t, entity.StatusRentado, out.Dress.Status)
	require.NotNil(t, out.User)
	assert.Equal(t, "staff@boutique.local", out.User.Email)
}

func TestCreateRental_VestidoRentado_RetornaNoDisponible(t *testing.T) {
	uc, s := newFixture(t, entity.StatusRentado)

	_, err := uc.CreateRental(context.Background(), fixtureUserID, rentalRequest())
	assert.ErrorIs(t, err, domain.ErrDressNotAvailable)
	assert.Empty(t, s.rentals, "no debe quedar ninguna renta registrada")
}

func TestCreateRental_VestidoVendido_RetornaVendido(t *testing.T) {
	uc, _ := newFixture(t, entity.StatusVendido)

	_, err := uc.CreateRental(context.Background(), fixtureUserID, rentalRequest())
	assert.ErrorIs(t, err, domain.ErrDressSold)
}

func TestCreateRental_VestidoInexistente_RetornaNotFound(t *testing.T) {
	uc, _ := newFixture(t, entity.StatusDisponible)

	in := rentalRequest()
	in.DressID = "00000000-0000-0000-0000-0000000000ff"
	_, err := uc.CreateRental(context.Background(), fixtureUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRental_UsuarioInexistente_RetornaUserNotFound(t *testing.T) {
	uc, s := newFixture(t, entity.StatusDisponible)

	_, err := uc.CreateRental(context.Background(), "00000000-0000-0000-0000-0000000000ff", rentalRequest())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, entity.StatusDisponible, s.dresses[fixtureDressID].Status)
}

func TestCreateRental_FechaFinAntesDeInicio_RetornaInvalidInput(t *testing.T) {
	uc, _ := newFixture(t, entity.StatusDisponible)

	in := rentalRequest()
	in.StartDate = "2026-09-08"
	in.EndDate = "2026-09-05"
	_, err := uc.CreateRental(context.Background(), fixtureUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La renta y el cambio de estado ocurren juntos o no ocurren: si el update del
// estado falla, la transacción se revierte y no queda renta huérfana.
func TestCreateRental_FalloEnCambioDeEstado_NoDejaRenta(t *testing.T) {
	uc, s := newFixture(t, entity.StatusDisponible)
	s.failStatusUpdate = true

	_, err := uc.CreateRental(context.Background(), fixtureUserID, rentalRequest())
	require.Error(t, err)

	assert.Empty(t, s.rentals, "rollback: la renta no debe persistir")
	assert.Equal(t, entity.StatusDisponible, s.dresses[fixtureDressID].Status,
		"rollback: el vestido sigue DISPONIBLE")
}

// Dos peticiones concurrentes sobre el mismo vestido: exactamente una gana.
func TestCreateRental_Concurrencia_SoloUnaGana(t *testing.T) {
	uc, s := newFixture(t, entity.StatusDisponible)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateRental(context.Background(), fixtureUserID, rentalRequest())
		}(i)
	}
	wg.Wait()

	okCount, notAvailable := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrDressNotAvailable):
			notAvailable++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una petición debe ganar")
	assert.Equal(t, 1, notAvailable, "la otra debe recibir no-disponible")
	assert.Len(t, s.rentals, 1)
	assert.Equal(t, entity.StatusRentado, s.dresses[fixtureDressID].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReturnRental / RemoveRental
// ──────────────────────────────────────────────────────────────────────────────

func TestReturnRental_CierraYLiberaElVestido(t *testing.T) {
	uc, s := newFixture(t, entity.StatusDisponible)

	created, err := uc.CreateRental(context.Background(), fixtureUserID, rentalRequest())
	require.NoError(t, err)

	out, err := uc.ReturnRental(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, out.ReturnedAt, "la renta cerrada lleva returned_at")

	assert.Equal(t, entity.StatusDisponible, s.dresses[fixtureDressID].Status,
		"el vestido vuelve a DISPONIBLE al devolverse")

	// Devolver dos veces no es válido
	_, err = uc.ReturnRental(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrRentalClosed)
}

func TestReturnRental_Inexistente_RetornaNotFound(t *testing.T) {
	uc, _ := newFixture(t, entity.StatusDisponible)

	_, err := uc.ReturnRental(context.Background(), "00000000-0000-0000-0000-0000000000ff")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveRental_EliminaYRestauraDisponible(t *testing.T) {
	uc, s := newFixture(t, entity.StatusDisponible)

	created, err := uc.CreateRental(context.Background(), fixtureUserID, rentalRequest())
	require.NoError(t, err)
	require.Equal(t, entity.StatusRentado, s.dresses[fixtureDressID].Status)

	require.NoError(t, uc.RemoveRental(context.Background(), created.ID))

	assert.Empty(t, s.rentals)
	assert.Equal(t, entity.StatusDisponible, s.dresses[fixtureDressID].Status,
		"cancelar la única renta restaura DISPONIBLE")
}

func TestRemoveRental_ConOtraRentaAbierta_NoLiberaElVestido(t *testing.T) {
	uc, s := newFixture(t, entity.StatusDisponible)
	now := time.Now()

	// Dos rentas históricas abiertas sobre el mismo vestido (datos legados)
	first := entity.Rental{
		ID: "r-1", ClientName: "Cliente A", StartDate: now, EndDate: now.AddDate(0, 0, 3),
		Price: decimal.NewFromInt(250), DressID: fixtureDressID, UserID: fixtureUserID,
		CreatedAt: now, UpdatedAt: now,
	}
	second := first
	second.ID = "r-2"
	second.ClientName = "Cliente B"
	s.rentals[first.ID] = first
	s.rentals[second.ID] = second
	d := s.dresses[fixtureDressID]
	d.Status = entity.StatusRentado
	s.dresses[fixtureDressID] = d

	require.NoError(t, uc.RemoveRental(context.Background(), first.ID))

	assert.Equal(t, entity.StatusRentado, s.dresses[fixtureDressID].Status,
		"mientras quede una renta abierta el vestido sigue RENTADO")
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale / RemoveSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_VestidoDisponible_QuedaVendido(t *testing.T) {
	uc, s := newFixture(t, entity.StatusDisponible)

	out, err := uc.CreateSale(context.Background(), fixtureUserID, saleRequest())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, entity.StatusVendido, s.dresses[fixtureDressID].Status)
	assert.Len(t, s.sales, 1)
	require.NotNil(t, out.Dress)
	assert.Equal(t, entity.StatusVendido, out.Dress.Status)
}

func TestCreateSale_VestidoRentado_RetornaNoDisponible(t *testing.T) {
	uc, s := newFixture(t, entity.StatusRentado)

	_, err := uc.CreateSale(context.Background(), fixtureUserID, saleRequest())
	assert.ErrorIs(t, err, domain.ErrDressNotAvailable,
		"un vestido rentado no se puede vender")
	assert.Empty(t, s.sales)
}

func TestCreateSale_VestidoVendido_RetornaVendido(t *testing.T) {
	uc, _ := newFixture(t, entity.StatusVendido)

	_, err := uc.CreateSale(context.Background(), fixtureUserID, saleRequest())
	assert.ErrorIs(t, err, domain.ErrDressSold, "VENDIDO es terminal")
}

func TestCreateSale_SinFecha_UsaHoy(t *testing.T) {
	uc, _ := newFixture(t, entity.StatusDisponible)

	in := saleRequest()
	in.Date = ""
	out, err := uc.CreateSale(context.Background(), fixtureUserID, in)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), out.Date, time.Minute)
}

func TestRemoveSale_SiempreFalla(t *testing.T) {
	uc, s := newFixture(t, entity.StatusDisponible)

	created, err := uc.CreateSale(context.Background(), fixtureUserID, saleRequest())
	require.NoError(t, err)

	err = uc.RemoveSale(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrDressSold, "una venta no se revierte")
	assert.Len(t, s.sales, 1, "la venta sigue registrada")
	assert.Equal(t, entity.StatusVendido, s.dresses[fixtureDressID].Status)

	err = uc.RemoveSale(context.Background(), "00000000-0000-0000-0000-0000000000ff")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
