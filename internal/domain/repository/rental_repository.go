package repository

import "github.com/tu-usuario/boutique-api/internal/domain/entity"

// RentalRepository define el puerto de persistencia para Rental (DIP).
type RentalRepository interface {
	Create(rental *entity.Rental) error
	GetByID(id string) (*entity.Rental, error)
	GetDetailedByID(id string) (*entity.RentalDetail, error)
	ListDetailed(limit, offset int) ([]*entity.RentalDetail, error)
	Update(rental *entity.Rental) error
	Delete(id string) error
	// CountOpenByDress cuenta rentas abiertas sobre un vestido, excluyendo
	// opcionalmente una renta (excludeID vacío = ninguna exclusión).
	CountOpenByDress(dressID, excludeID string) (int, error)
	ExistsByDress(dressID string) (bool, error)
	ExistsByUser(userID string) (bool, error)
}
