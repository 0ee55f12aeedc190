package models

import (
	"time"
)

// Priority values suggested by the UI. The column itself is free text.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DefaultCategory is applied when a task is created without one.
const DefaultCategory = "personal"

// Task represents a todo item
type Task struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Priority    string     `gorm:"default:medium;index" json:"priority"` // low, medium, high
	Category    string     `gorm:"default:personal;index" json:"category"`
	Completed   bool       `gorm:"default:false;index" json:"completed"`
	DueDate     *time.Time `gorm:"index" json:"due_date"` // calendar date, stored at UTC midnight
}
