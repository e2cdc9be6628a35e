package repositories

import (
	"github.com/shopspring/decimal"

	"automarket/internal/models"
)

// CarFilters is the set of optional search predicates. Zero values impose no
// constraint. All predicates are conjunctive; Search is a case-insensitive
// substring match OR'd across brand, model, version and description.
type CarFilters struct {
	Brand        string
	Model        string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinYear      int
	MaxYear      int
	Transmission string
	Fuel         string
	Status       string
	SellerID     uint
	StoreID      uint
	Search       string
}

// CarRepository defines the interface for listing, photo and view data access.
type CarRepository interface {
	Create(car *models.Car) error
	GetByID(id uint) (*models.Car, error)
	Update(car *models.Car) error
	UpdateStatus(id uint, status models.CarStatus) error
	// ActivateWithQuota transitions the car to ACTIVE only while the seller
	// owns fewer than maxActive other ACTIVE listings. The check and the
	// write are a single atomic statement.
	ActivateWithQuota(id, sellerID uint, maxActive int) error
	Delete(id uint) error
	GetBySellerID(sellerID uint) ([]models.Car, error)
	GetByStoreID(storeID uint) ([]models.Car, error)
	// BanBySeller sets status BANNED on every listing of the seller and
	// returns the number of affected rows.
	BanBySeller(sellerID uint) (int64, error)
	// Search returns one page ordered by creation time descending (ties by
	// id ascending) plus the total count under the same predicate set.
	Search(filters CarFilters, limit, offset int) ([]models.Car, int64, error)

	AddPhoto(photo *models.CarPhoto) error
	GetPhotos(carID uint) ([]models.CarPhoto, error)
	CountPhotos(carID uint) (int64, error)
	GetPhotoByID(photoID uint) (*models.CarPhoto, error)
	DeletePhoto(photoID uint) error
	UpdatePhotoOrder(photoID uint, orderIndex int) error

	AddView(view *models.CarView) error
}
