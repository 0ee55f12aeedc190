package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskwell/internal/models"
	"taskwell/internal/query"
)

// Sentinel errors for the two failure classes callers branch on.
// Anything else coming out of this package is a storage fault.
var (
	ErrTitleRequired = errors.New("title is required")
	ErrTaskNotFound  = errors.New("task not found")
)

// TaskRequest holds the caller-supplied fields for create and edit.
// Edit is a full overwrite, so the same struct serves both.
type TaskRequest struct {
	Title       string
	Description string
	Priority    string     // low/medium/high, empty defaults to medium
	Category    string     // free text, empty defaults to personal
	DueDate     *time.Time // calendar date, nil for no due date
}

// CreateTask creates a new task, applying the priority and category
// defaults. The empty title check is the only validation performed.
func CreateTask(req TaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	task := models.Task{
		Title:       title,
		Description: req.Description,
		Priority:    normalizePriority(req.Priority),
		Category:    normalizeCategory(req.Category),
		DueDate:     normalizeDue(req.DueDate),
	}

	if err := DB.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// GetTaskByID fetches a single task
func GetTaskByID(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task #%d: %w", taskID, ErrTaskNotFound)
		}
		return nil, fmt.Errorf("failed to fetch task #%d: %w", taskID, err)
	}
	return &task, nil
}

// UpdateTask overwrites all mutable fields of an existing task.
func UpdateTask(taskID uint, req TaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	task, err := GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = req.Description
	task.Priority = normalizePriority(req.Priority)
	task.Category = normalizeCategory(req.Category)
	task.DueDate = normalizeDue(req.DueDate)

	if err := DB.Save(task).Error; err != nil {
		return nil, fmt.Errorf("failed to update task #%d: %w", taskID, err)
	}

	return task, nil
}

// ToggleTask flips a task's completed flag
func ToggleTask(taskID uint) (*models.Task, error) {
	task, err := GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed

	if err := DB.Save(task).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle task #%d: %w", taskID, err)
	}

	return task, nil
}

// DeleteTask removes a task. Deleting a missing id reports
// ErrTaskNotFound; callers that want idempotent-delete semantics
// treat that as a no-op.
func DeleteTask(taskID uint) error {
	res := DB.Delete(&models.Task{}, taskID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task #%d: %w", taskID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task #%d: %w", taskID, ErrTaskNotFound)
	}
	return nil
}

// ListTasks executes a compiled plan: one count over the filtered set
// and one page of rows. Both queries are built from the same clause
// slice, so the returned total always agrees with the row set.
func ListTasks(plan query.Plan) ([]models.Task, int64, error) {
	filtered := func() *gorm.DB {
		tx := DB.Model(&models.Task{})
		for _, c := range plan.Clauses {
			tx = tx.Where(c.Expr, c.Args...)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	var tasks []models.Task
	err := filtered().
		Order(plan.OrderBy).
		Limit(plan.Limit).
		Offset(plan.Offset).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// normalizePriority falls back to medium for the empty string. Unknown
// values pass through: priority is free text by design.
func normalizePriority(priority string) string {
	priority = strings.ToLower(strings.TrimSpace(priority))
	if priority == "" {
		return models.PriorityMedium
	}
	return priority
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.DefaultCategory
	}
	return category
}

// normalizeDue anchors a due date at UTC midnight so stored values
// compare as pure calendar dates.
func normalizeDue(due *time.Time) *time.Time {
	if due == nil {
		return nil
	}
	d := query.Midnight(*due)
	return &d
}
