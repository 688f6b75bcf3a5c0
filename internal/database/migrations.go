package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/service-task-manager/internal/models"
	"gorm.io/gorm"
)

// DefaultStatuses are created on an empty database so that tasks can be
// created without an explicit status.
var DefaultStatuses = []models.TaskStatus{
	{Name: "Scheduled", Color: "#3b82f6", NotifyClient: false},
	{Name: "In Progress", Color: "#f59e0b", NotifyClient: false},
	{Name: "Completed", Color: "#10b981", NotifyClient: true},
}

// SeedStatuses inserts DefaultStatuses when the task_statuses table is empty.
func SeedStatuses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.TaskStatus{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count task statuses: %w", err)
	}
	if count > 0 {
		return nil
	}

	statuses := make([]models.TaskStatus, len(DefaultStatuses))
	copy(statuses, DefaultStatuses)
	if err := db.Create(&statuses).Error; err != nil {
		return fmt.Errorf("failed to seed task statuses: %w", err)
	}

	log.Printf("Seeded %d default task statuses", len(statuses))
	return nil
}
