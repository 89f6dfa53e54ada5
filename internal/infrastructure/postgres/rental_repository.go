package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
	"github.com/tu-usuario/boutique-api/internal/domain/repository"
)

var _ repository.RentalRepository = (*RentalRepo)(nil)

// RentalRepo implementación del puerto RentalRepository sobre PostgreSQL (usable con pool o tx).
type RentalRepo struct {
	q Querier
}

// NewRentalRepository construye el adaptador de persistencia para rentas. Pasar pool o tx.
func NewRentalRepository(q Querier) *RentalRepo {
	return &RentalRepo{q: q}
}

// Create persiste una nueva renta.
func (r *RentalRepo) Create(rental *entity.Rental) error {
	query := `
		INSERT INTO rentals (id, client_name, start_date, end_date, price, dress_id, user_id, returned_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		rental.ID, rental.ClientName, rental.StartDate, rental.EndDate, rental.Price,
		rental.DressID, rental.UserID, rental.ReturnedAt, rental.CreatedAt, rental.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

// GetByID obtiene una renta por ID. nil si no existe.
func (r *RentalRepo) GetByID(id string) (*entity.Rental, error) {
	query := `
		SELECT id, client_name, start_date, end_date, price, dress_id, user_id, returned_at, created_at, updated_at
		FROM rentals WHERE id = $1`
	var rn entity.Rental
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rn.ID, &rn.ClientName, &rn.StartDate, &rn.EndDate, &rn.Price,
		&rn.DressID, &rn.UserID, &rn.ReturnedAt, &rn.CreatedAt, &rn.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental by id: %w", err)
	}
	return &rn, nil
}

const rentalDetailQuery = `
	SELECT r.id, r.client_name, r.start_date, r.end_date, r.price, r.dress_id, r.user_id,
	       r.returned_at, r.created_at, r.updated_at,
	       d.id, d.name, d.size, d.color, d.price, d.rental_price, d.status, d.created_at, d.updated_at,
	       u.id, u.email, u.name, u.role, u.created_at, u.updated_at
	FROM rentals r
	JOIN dresses d ON d.id = r.dress_id
	JOIN users u ON u.id = r.user_id`

func scanRentalDetail(row pgx.Row) (*entity.RentalDetail, error) {
	var det entity.RentalDetail
	err := row.Scan(
		&det.ID, &det.ClientName, &det.StartDate, &det.EndDate, &det.Price,
		&det.DressID, &det.UserID, &det.ReturnedAt, &det.CreatedAt, &det.UpdatedAt,
		&det.Dress.ID, &det.Dress.Name, &det.Dress.Size, &det.Dress.Color,
		&det.Dress.Price, &det.Dress.RentalPrice, &det.Dress.Status,
		&det.Dress.CreatedAt, &det.Dress.UpdatedAt,
		&det.User.ID, &det.User.Email, &det.User.Name, &det.User.Role,
		&det.User.CreatedAt, &det.User.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &det, nil
}

// GetDetailedByID obtiene una renta con su vestido y usuario. nil si no existe.
func (r *RentalRepo) GetDetailedByID(id string) (*entity.RentalDetail, error) {
	det, err := scanRentalDetail(r.q.QueryRow(context.Background(), rentalDetailQuery+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental detailed: %w", err)
	}
	return det, nil
}

// ListDetailed lista rentas con vestido y usuario, paginado.
func (r *RentalRepo) ListDetailed(limit, offset int) ([]*entity.RentalDetail, error) {
	rows, err := r.q.Query(context.Background(), rentalDetailQuery+` ORDER BY r.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()
	var list []*entity.RentalDetail
	for rows.Next() {
		det, err := scanRentalDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		list = append(list, det)
	}
	return list, rows.Err()
}

// Update actualiza una renta.
func (r *RentalRepo) Update(rental *entity.Rental) error {
	query := `
		UPDATE rentals SET client_name = $2, start_date = $3, end_date = $4, price = $5,
			returned_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rental.ID, rental.ClientName, rental.StartDate, rental.EndDate, rental.Price,
		rental.ReturnedAt, rental.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	return nil
}

// Delete elimina una renta por ID.
func (r *RentalRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rental: %w", err)
	}
	return nil
}

// CountOpenByDress cuenta rentas abiertas (returned_at IS NULL) sobre un
// vestido, excluyendo opcionalmente una renta.
func (r *RentalRepo) CountOpenByDress(dressID, excludeID string) (int, error) {
	query := `
		SELECT count(*) FROM rentals
		WHERE dress_id = $1 AND returned_at IS NULL AND ($2 = '' OR id::text <> $2)`
	var n int
	err := r.q.QueryRow(context.Background(), query, dressID, excludeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open rentals: %w", err)
	}
	return n, nil
}

// ExistsByDress indica si alguna renta referencia al vestido.
func (r *RentalRepo) ExistsByDress(dressID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM rentals WHERE dress_id = $1)`, dressID)
}

// ExistsByUser indica si alguna renta referencia al usuario.
func (r *RentalRepo) ExistsByUser(userID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM rentals WHERE user_id = $1)`, userID)
}

func (r *RentalRepo) exists(query, arg string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(context.Background(), query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists rental: %w", err)
	}
	return ok, nil
}
