package repository

import "github.com/tu-usuario/boutique-api/internal/domain/entity"

// DressRepository define el puerto de persistencia para Dress (DIP).
// GetByIDForUpdate solo tiene efecto de bloqueo dentro de una transacción
// (ver TxRunner); fuera de una tx se comporta como GetByID.
type DressRepository interface {
	Create(dress *entity.Dress) error
	GetByID(id string) (*entity.Dress, error)
	GetByIDForUpdate(id string) (*entity.Dress, error)
	List(limit, offset int) ([]*entity.Dress, error)
	Update(dress *entity.Dress) error
	UpdateStatus(id, status string) error
	Delete(id string) error
}
