package repository

import "github.com/tu-usuario/boutique-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale (DIP).
// No existe Delete: una venta es terminal y no se revierte.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	GetDetailedByID(id string) (*entity.SaleDetail, error)
	ListDetailed(limit, offset int) ([]*entity.SaleDetail, error)
	Update(sale *entity.Sale) error
	ExistsByDress(dressID string) (bool, error)
	ExistsByUser(userID string) (bool, error)
}
