package addressrepo

import (
	"context"
	"errors"

	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressBookRepository implements ports.AddressBookRepository using GORM.
type GormAddressBookRepository struct {
	db *gorm.DB
}

func NewGormAddressBookRepository(db *gorm.DB) *GormAddressBookRepository {
	return &GormAddressBookRepository{db: db}
}

func (r *GormAddressBookRepository) Get(ctx context.Context, id int64) (ports.AddressBookEntry, error) {
	var dto AddressBookDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AddressBookEntry{}, errs.NewObjectNotFoundError("address book entry", id)
		}
		return ports.AddressBookEntry{}, err
	}
	return toEntry(dto), nil
}
