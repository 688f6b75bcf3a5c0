package models

import "time"

type Property struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Address    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_property_location" json:"address"`
	City       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_property_location" json:"city"`
	State      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_property_location" json:"state"`
	Zip        string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_property_location" json:"zip"`
	CustomerID uint64    `gorm:"not null;index;uniqueIndex:idx_property_location" json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}
