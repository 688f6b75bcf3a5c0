package models

import "time"

// NotificationLog records one channel attempt of a customer notification.
type NotificationLog struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	TaskID       uint64    `gorm:"not null;index" json:"task_id"`
	DispatchID   string    `gorm:"type:varchar(36);not null;index" json:"dispatch_id"`
	Channel      string    `gorm:"type:varchar(10);not null" json:"channel"` // email, sms
	Recipient    string    `gorm:"type:varchar(255)" json:"recipient"`
	Status       string    `gorm:"type:varchar(10);not null" json:"status"` // sent, failed, skipped
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
