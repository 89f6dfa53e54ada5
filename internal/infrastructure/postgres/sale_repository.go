package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/boutique-api/internal/domain/entity"
	"github.com/tu-usuario/boutique-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
// Sin Delete: una venta es terminal.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una nueva venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, client_name, date, price, dress_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ClientName, sale.Date, sale.Price, sale.DressID, sale.UserID,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, client_name, date, price, dress_id, user_id, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ClientName, &s.Date, &s.Price, &s.DressID, &s.UserID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by id: %w", err)
	}
	return &s, nil
}

const saleDetailQuery = `
	SELECT s.id, s.client_name, s.date, s.price, s.dress_id, s.user_id, s.created_at, s.updated_at,
	       d.id, d.name, d.size, d.color, d.price, d.rental_price, d.status, d.created_at, d.updated_at,
	       u.id, u.email, u.name, u.role, u.created_at, u.updated_at
	FROM sales s
	JOIN dresses d ON d.id = s.dress_id
	JOIN users u ON u.id = s.user_id`

func scanSaleDetail(row pgx.Row) (*entity.SaleDetail, error) {
	var det entity.SaleDetail
	err := row.Scan(
		&det.ID, &det.ClientName, &det.Date, &det.Price, &det.DressID, &det.UserID,
		&det.CreatedAt, &det.UpdatedAt,
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

// GetDetailedByID obtiene una venta con su vestido y usuario. nil si no existe.
func (r *SaleRepo) GetDetailedByID(id string) (*entity.SaleDetail, error) {
	det, err := scanSaleDetail(r.q.QueryRow(context.Background(), saleDetailQuery+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale detailed: %w", err)
	}
	return det, nil
}

// ListDetailed lista ventas con vestido y usuario, paginado.
func (r *SaleRepo) ListDetailed(limit, offset int) ([]*entity.SaleDetail, error) {
	rows, err := r.q.Query(context.Background(), saleDetailQuery+` ORDER BY s.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleDetail
	for rows.Next() {
		det, err := scanSaleDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, det)
	}
	return list, rows.Err()
}

// Update actualiza una venta (campos mutables).
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET client_name = $2, date = $3, price = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ClientName, sale.Date, sale.Price, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// ExistsByDress indica si alguna venta referencia al vestido.
func (r *SaleRepo) ExistsByDress(dressID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM sales WHERE dress_id = $1)`, dressID)
}

// ExistsByUser indica si alguna venta referencia al usuario.
func (r *SaleRepo) ExistsByUser(userID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM sales WHERE user_id = $1)`, userID)
}

func (r *SaleRepo) exists(query, arg string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(context.Background(), query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists sale: %w", err)
	}
	return ok, nil
}
