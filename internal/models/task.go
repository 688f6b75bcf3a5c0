package models

import (
	"time"
)

type Task struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	CustomerID   uint64     `gorm:"not null;index" json:"customer_id"`
	PropertyID   uint64     `gorm:"not null;index" json:"property_id"`
	ServiceID    uint64     `gorm:"not null;index" json:"service_id"`
	StatusID     uint64     `gorm:"not null;index" json:"status_id"`
	Notes        string     `gorm:"type:text" json:"notes"`
	ScheduledFor *time.Time `json:"scheduled_for"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Property Property    `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Service  Service     `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Status   TaskStatus  `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Media    []TaskMedia `gorm:"foreignKey:TaskID" json:"media,omitempty"`
}

// MediaURLs returns the attachment URLs in insertion order.
func (t Task) MediaURLs() []string {
	urls := make([]string, 0, len(t.Media))
	for _, m := range t.Media {
		urls = append(urls, m.URL)
	}
	return urls
}
