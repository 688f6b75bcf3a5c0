package services

import "github.com/yukikurage/service-task-manager/internal/models"

// StatusSnapshot is the part of a TaskStatus that decides notification.
type StatusSnapshot struct {
	ID           uint64
	NotifyClient bool
}

// SnapshotOf captures a status for ShouldNotify.
func SnapshotOf(status models.TaskStatus) StatusSnapshot {
	return StatusSnapshot{ID: status.ID, NotifyClient: status.NotifyClient}
}

// ShouldNotify reports whether moving a task from previous (nil for a new
// task) to next must notify the customer. The next status must notify, and
// either the status changed or the previous status did not notify.
func ShouldNotify(previous *StatusSnapshot, next StatusSnapshot) bool {
	if !next.NotifyClient {
		return false
	}
	return previous == nil || previous.ID != next.ID || !previous.NotifyClient
}
