package models

import "time"

type TaskStatus struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Color        string    `gorm:"type:varchar(20)" json:"color"`
	NotifyClient bool      `gorm:"not null;default:false" json:"notify_client"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
