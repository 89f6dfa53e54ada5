package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/boutique-api/internal/domain"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
	"github.com/tu-usuario/boutique-api/internal/domain/repository"
)

var _ repository.DressRepository = (*DressRepo)(nil)

// DressRepo implementación del puerto DressRepository sobre PostgreSQL (usable con pool o tx).
type DressRepo struct {
	q Querier
}

// NewDressRepository construye el adaptador de persistencia para vestidos. Pasar pool o tx.
func NewDressRepository(q Querier) *DressRepo {
	return &DressRepo{q: q}
}

const dressColumns = `id, name, size, color, price, rental_price, status, created_at, updated_at`

// Create persiste un nuevo vestido.
func (r *DressRepo) Create(dress *entity.Dress) error {
	query := `
		INSERT INTO dresses (id, name, size, color, price, rental_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		dress.ID, dress.Name, dress.Size, dress.Color, dress.Price, dress.RentalPrice,
		dress.Status, dress.CreatedAt, dress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dress: %w", err)
	}
	return nil
}

// GetByID obtiene un vestido por ID. nil si no existe.
func (r *DressRepo) GetByID(id string) (*entity.Dress, error) {
	query := `SELECT ` + dressColumns + ` FROM dresses WHERE id = $1`
	return r.scanOne(query, id, "get dress by id")
}

// GetByIDForUpdate obtiene un vestido bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene efecto dentro de una transacción.
func (r *DressRepo) GetByIDForUpdate(id string) (*entity.Dress, error) {
	query := `SELECT ` + dressColumns + ` FROM dresses WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id, "get dress for update")
}

func (r *DressRepo) scanOne(query, id, op string) (*entity.Dress, error) {
	var d entity.Dress
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.Size, &d.Color, &d.Price, &d.RentalPrice, &d.Status,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &d, nil
}

// List lista vestidos con paginación.
func (r *DressRepo) List(limit, offset int) ([]*entity.Dress, error) {
	query := `SELECT ` + dressColumns + ` FROM dresses ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list dresses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Dress
	for rows.Next() {
		var d entity.Dress
		if err := rows.Scan(&d.ID, &d.Name, &d.Size, &d.Color, &d.Price, &d.RentalPrice, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan dress: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza un vestido completo.
func (r *DressRepo) Update(dress *entity.Dress) error {
	query := `
		UPDATE dresses SET name = $2, size = $3, color = $4, price = $5,
			rental_price = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		dress.ID, dress.Name, dress.Size, dress.Color, dress.Price, dress.RentalPrice,
		dress.Status, dress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update dress: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado del vestido.
func (r *DressRepo) UpdateStatus(id, status string) error {
	query := `UPDATE dresses SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update dress status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un vestido por ID. El FK RESTRICT de rentals/sales lo bloquea
// si el vestido está referenciado.
func (r *DressRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM dresses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrDressReferenced
		}
		return fmt.Errorf("delete dress: %w", err)
	}
	return nil
}
