package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "task_session"
	ContextKeyUserID  = "user_id"
	ContextKeyTask    = "task"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Task workflow
const (
	// DefaultTaskStatusName is used when a task is created without a status.
	DefaultTaskStatusName = "Completed"

	DefaultNotificationTimeout = 30 * time.Second
)
