package models

import "time"

type TaskMedia struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	URL       string    `gorm:"type:varchar(2048);not null" json:"url"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
}
