// Package addressrepo reads the address book owned by the user profile subsystem.
package addressrepo

import "takeout/internal/core/ports"

type AddressBookDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;index"`
	Consignee string `gorm:"type:varchar(64);not null;default:''"`
	Phone     string `gorm:"type:varchar(32);not null"`
	Province  string `gorm:"type:varchar(64);not null;default:''"`
	City      string `gorm:"type:varchar(64);not null;default:''"`
	District  string `gorm:"type:varchar(64);not null;default:''"`
	Detail    string `gorm:"type:varchar(255);not null;default:''"`
	IsDefault bool   `gorm:"not null;default:false"`
}

func (AddressBookDTO) TableName() string {
	return "address_book"
}

func toEntry(dto AddressBookDTO) ports.AddressBookEntry {
	return ports.AddressBookEntry{
		ID:        dto.ID,
		UserID:    dto.UserID,
		Consignee: dto.Consignee,
		Phone:     dto.Phone,
		Province:  dto.Province,
		City:      dto.City,
		District:  dto.District,
		Detail:    dto.Detail,
	}
}
