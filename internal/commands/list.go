package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskwell/internal/db"
	"taskwell/internal/models"
	"taskwell/internal/query"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks with optional filters for category, status, priority, and due window",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		runListing(listingFlagOptions(cmd))
	}),
}

// listingFlagOptions reads the shared filter flags into query options.
func listingFlagOptions(cmd *cobra.Command) query.Options {
	category, _ := cmd.Flags().GetString("category")
	status, _ := cmd.Flags().GetString("status")
	priority, _ := cmd.Flags().GetString("priority")
	due, _ := cmd.Flags().GetString("due")
	sort, _ := cmd.Flags().GetString("sort")
	page, _ := cmd.Flags().GetInt("page")

	return query.Options{
		Category: category,
		Status:   status,
		Priority: priority,
		Due:      due,
		Sort:     sort,
		Page:     page,
	}
}

// addListingFlags registers the filter flags shared by ls and search.
func addListingFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("category", "c", "all", "Filter by category")
	cmd.Flags().StringP("status", "s", "all", "Filter by status: all, active, completed")
	cmd.Flags().StringP("priority", "p", "all", "Filter by priority: all, low, medium, high")
	cmd.Flags().String("due", "all", "Filter by due window: all, overdue, today, week")
	cmd.Flags().String("sort", "default", "Sort: default, due_date, created_at, priority, alpha")
	cmd.Flags().Int("page", 1, "Page number (50 tasks per page)")
}

// runListing compiles the plan, queries the store, and prints a table.
func runListing(opts query.Options) {
	plan := query.Compile(opts, time.Now())
	tasks, total, err := db.ListTasks(plan)
	if err != nil {
		fmt.Printf("Error fetching tasks: %v\n", err)
		return
	}

	if total == 0 {
		fmt.Println("No tasks found. Use 'taskwell add \"task title\"' to create your first task.")
		return
	}

	renderTaskTable(tasks)

	totalPages := query.TotalPages(total)
	if totalPages > 1 {
		fmt.Printf("\nPage %d of %d (%d tasks)\n", plan.Page, totalPages, total)
	}
}

// renderTaskTable prints tasks in the fixed-width table layout.
func renderTaskTable(tasks []models.Task) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-5s %-2s %-40s %-8s %-14s %s",
		"ID", "", "TITLE", "PRIORITY", "CATEGORY", "DUE")))
	fmt.Println(strings.Repeat("-", 84))

	today := query.Midnight(time.Now())
	for _, task := range tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}

		// Truncate title if too long
		title := task.Title
		if len(title) > 38 {
			title = title[:35] + "..."
		}

		category := task.Category
		if len(category) > 12 {
			category = category[:9] + "..."
		}

		due := ""
		if task.DueDate != nil {
			due = task.DueDate.Format("2006-01-02")
			if !task.Completed && task.DueDate.Before(today) {
				due = overdueStyle.Render(due)
			}
		}

		priority := task.Priority
		if priority == models.PriorityHigh && !task.Completed {
			priority = highStyle.Render(priority)
		}

		line := fmt.Sprintf("#%-4d %-2s %-40s %-8s %-14s %s",
			task.ID, mark, title, priority, category, due)
		if task.Completed {
			line = mutedStyle.Render(line)
		}
		fmt.Println(line)
	}
}

func init() {
	addListingFlags(listCmd)
}
