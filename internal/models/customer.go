package models

import "time"

type Customer struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email     *string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Properties []Property `gorm:"foreignKey:CustomerID" json:"properties,omitempty"`
}

// EmailAddress returns the customer's email or an empty string.
func (c Customer) EmailAddress() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}
