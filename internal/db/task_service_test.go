package db

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskwell/internal/models"
	"taskwell/internal/query"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Open(filepath.Join(t.TempDir(), "taskwell.db")))
	t.Cleanup(func() { Close() })
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func mustCreate(t *testing.T, req TaskRequest) *models.Task {
	t.Helper()
	task, err := CreateTask(req)
	require.NoError(t, err)
	return task
}

// collectAll pages through a listing until it runs dry and returns
// every row together with the reported total.
func collectAll(t *testing.T, opts query.Options, now time.Time) ([]models.Task, int64) {
	t.Helper()
	var all []models.Task
	var total int64
	for page := 1; ; page++ {
		opts.Page = page
		tasks, tot, err := ListTasks(query.Compile(opts, now))
		require.NoError(t, err)
		total = tot
		if len(tasks) == 0 {
			break
		}
		all = append(all, tasks...)
	}
	return all, total
}

func TestCreateAppliesDefaults(t *testing.T) {
	setupDB(t)

	task := mustCreate(t, TaskRequest{Title: "  Pay rent  "})

	assert.Equal(t, "Pay rent", task.Title)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.DefaultCategory, task.Category)
	assert.False(t, task.Completed)
	assert.Nil(t, task.DueDate)
	assert.False(t, task.UpdatedAt.Before(task.CreatedAt))
}

func TestCreateRequiresTitle(t *testing.T) {
	setupDB(t)

	for _, title := range []string{"", "   "} {
		_, err := CreateTask(TaskRequest{Title: title})
		assert.ErrorIs(t, err, ErrTitleRequired)
	}
}

func TestCreateListRoundTrip(t *testing.T) {
	setupDB(t)

	created := mustCreate(t, TaskRequest{
		Title:       "Renew passport",
		Description: "bring photos",
		Priority:    "high",
		Category:    "errands",
		DueDate:     datePtr(2030, 6, 1),
	})

	tasks, total, err := ListTasks(query.Compile(query.Options{}, time.Now()))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Renew passport", got.Title)
	assert.Equal(t, "bring photos", got.Description)
	assert.Equal(t, "high", got.Priority)
	assert.Equal(t, "errands", got.Category)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	setupDB(t)

	task := mustCreate(t, TaskRequest{
		Title:       "Old title",
		Description: "old",
		Priority:    "low",
		Category:    "work",
		DueDate:     datePtr(2030, 1, 1),
	})

	updated, err := UpdateTask(task.ID, TaskRequest{
		Title:       "New title",
		Description: "new",
		Priority:    "high",
		Category:    "home",
	})
	require.NoError(t, err)

	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, "high", updated.Priority)
	assert.Equal(t, "home", updated.Category)
	assert.Nil(t, updated.DueDate, "full overwrite clears an omitted due date")
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestUpdateMissingTask(t *testing.T) {
	setupDB(t)

	_, err := UpdateTask(9999, TaskRequest{Title: "whatever"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	setupDB(t)

	task := mustCreate(t, TaskRequest{Title: "Water plants"})

	once, err := ToggleTask(task.ID)
	require.NoError(t, err)
	assert.True(t, once.Completed)
	assert.False(t, once.UpdatedAt.Before(once.CreatedAt))

	twice, err := ToggleTask(task.ID)
	require.NoError(t, err)
	assert.False(t, twice.Completed)

	_, err = ToggleTask(12345)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	setupDB(t)

	task := mustCreate(t, TaskRequest{Title: "Throwaway"})

	require.NoError(t, DeleteTask(task.ID))
	_, err := GetTaskByID(task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// Deleting again reports not-found consistently.
	assert.ErrorIs(t, DeleteTask(task.ID), ErrTaskNotFound)
}

func TestPaginationConsistency(t *testing.T) {
	setupDB(t)

	categories := []string{"work", "home", "errands"}
	for i := 0; i < 120; i++ {
		task := mustCreate(t, TaskRequest{
			Title:    fmt.Sprintf("Task %03d", i),
			Category: categories[i%len(categories)],
			Priority: []string{"low", "medium", "high"}[i%3],
		})
		if i%2 == 0 {
			_, err := ToggleTask(task.ID)
			require.NoError(t, err)
		}
	}

	now := time.Now()
	bundles := []query.Options{
		{},
		{Category: "work"},
		{Status: query.StatusActive},
		{Status: query.StatusCompleted, Category: "home"},
		{Priority: "high", Sort: query.SortAlpha},
		{Search: "Task 01"},
	}
	for _, opts := range bundles {
		rows, total := collectAll(t, opts, now)
		assert.EqualValues(t, len(rows), total, "bundle %+v", opts)
	}
}

func TestPageBeyondLast(t *testing.T) {
	setupDB(t)

	for i := 0; i < 51; i++ {
		mustCreate(t, TaskRequest{Title: fmt.Sprintf("Task %02d", i)})
	}

	tasks, total, err := ListTasks(query.Compile(query.Options{Page: 99}, time.Now()))
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.EqualValues(t, 51, total)
	assert.Equal(t, 2, query.TotalPages(total))
}

func TestDueDateSortPutsNullsLast(t *testing.T) {
	setupDB(t)

	a := mustCreate(t, TaskRequest{Title: "A", Priority: "high", DueDate: datePtr(2024, 1, 1)})
	b := mustCreate(t, TaskRequest{Title: "B", Priority: "low"})
	c := mustCreate(t, TaskRequest{Title: "C", Priority: "medium", DueDate: datePtr(2024, 1, 10)})

	tasks, _, err := ListTasks(query.Compile(query.Options{Sort: query.SortDueDate}, time.Now()))
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []uint{a.ID, c.ID, b.ID}, []uint{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestPrioritySortHighFirst(t *testing.T) {
	setupDB(t)

	low := mustCreate(t, TaskRequest{Title: "low one", Priority: "low"})
	high := mustCreate(t, TaskRequest{Title: "high one", Priority: "high"})
	med := mustCreate(t, TaskRequest{Title: "medium one", Priority: "medium"})

	tasks, _, err := ListTasks(query.Compile(query.Options{Sort: query.SortPriority}, time.Now()))
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []uint{high.ID, med.ID, low.ID}, []uint{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestAlphaSortIsCaseInsensitive(t *testing.T) {
	setupDB(t)

	mustCreate(t, TaskRequest{Title: "banana"})
	mustCreate(t, TaskRequest{Title: "Apple"})
	mustCreate(t, TaskRequest{Title: "cherry"})

	tasks, _, err := ListTasks(query.Compile(query.Options{Sort: query.SortAlpha}, time.Now()))
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Apple", tasks[0].Title)
	assert.Equal(t, "banana", tasks[1].Title)
	assert.Equal(t, "cherry", tasks[2].Title)
}

func TestSearchMatchesTitleAndDescription(t *testing.T) {
	setupDB(t)

	mustCreate(t, TaskRequest{Title: "Pay rent"})
	mustCreate(t, TaskRequest{Title: "Bills", Description: "remember to pay the bill"})
	mustCreate(t, TaskRequest{Title: "Unrelated"})

	tasks, total, err := ListTasks(query.Compile(query.Options{Search: "pay"}, time.Now()))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, tasks, 2)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	setupDB(t)

	mustCreate(t, TaskRequest{Title: "Donate 50%"})
	mustCreate(t, TaskRequest{Title: "Donate 500"})
	mustCreate(t, TaskRequest{Title: "snake_case cleanup"})
	mustCreate(t, TaskRequest{Title: "snakeXcase cleanup"})

	tasks, total, err := ListTasks(query.Compile(query.Options{Search: "50%"}, time.Now()))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Donate 50%", tasks[0].Title)

	tasks, total, err = ListTasks(query.Compile(query.Options{Search: "snake_case"}, time.Now()))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "snake_case cleanup", tasks[0].Title)
}

func TestDueWindowsAgainstPinnedClock(t *testing.T) {
	setupDB(t)

	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	yesterday := mustCreate(t, TaskRequest{Title: "yesterday", DueDate: datePtr(2024, 1, 4)})
	today := mustCreate(t, TaskRequest{Title: "today", DueDate: datePtr(2024, 1, 5)})
	weekEdge := mustCreate(t, TaskRequest{Title: "week edge", DueDate: datePtr(2024, 1, 12)})
	mustCreate(t, TaskRequest{Title: "beyond week", DueDate: datePtr(2024, 1, 13)})
	mustCreate(t, TaskRequest{Title: "no due date"})

	// Due today is not overdue.
	tasks, total, err := ListTasks(query.Compile(query.Options{Due: query.DueOverdue}, now))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, yesterday.ID, tasks[0].ID)

	tasks, _, err = ListTasks(query.Compile(query.Options{Due: query.DueToday}, now))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, today.ID, tasks[0].ID)

	// Week covers [today, today+7] inclusive.
	tasks, _, err = ListTasks(query.Compile(query.Options{Due: query.DueWeek}, now))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	ids := []uint{tasks[0].ID, tasks[1].ID}
	assert.Contains(t, ids, today.ID)
	assert.Contains(t, ids, weekEdge.ID)
}

func TestBootstrapIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskwell.db")

	require.NoError(t, Open(path))
	mustCreate(t, TaskRequest{Title: "survives reopen"})
	require.NoError(t, Close())

	// Reopening re-runs migrations against the existing schema.
	require.NoError(t, Open(path))
	t.Cleanup(func() { Close() })

	tasks, total, err := ListTasks(query.Compile(query.Options{}, time.Now()))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "survives reopen", tasks[0].Title)
}
