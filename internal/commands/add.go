package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskwell/internal/db"
	"taskwell/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task.

Examples:
  taskwell add "Pay rent"
  taskwell add "Renew passport" --category errands --priority high --due 2024-02-01
  taskwell add "Water plants" --due "3 days"`,
	Args: cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		title := strings.Join(args, " ")
		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetString("priority")
		category, _ := cmd.Flags().GetString("category")
		due, _ := cmd.Flags().GetString("due")

		dueDate, err := parser.ParseDueDate(due)
		if err != nil {
			fmt.Printf("Error parsing due date: %v\n", err)
			return
		}

		task, err := db.CreateTask(db.TaskRequest{
			Title:       title,
			Description: description,
			Priority:    priority,
			Category:    category,
			DueDate:     dueDate,
		})
		if err != nil {
			fmt.Printf("Error creating task: %v\n", err)
			return
		}

		fmt.Printf("Created task #%d: %s\n", task.ID, task.Title)
		fmt.Printf("  Priority: %s\n", task.Priority)
		fmt.Printf("  Category: %s\n", task.Category)
		if task.DueDate != nil {
			fmt.Printf("  Due: %s\n", parser.FormatDueDate(task.DueDate))
		}
	}),
}

func init() {
	addCmd.Flags().StringP("description", "d", "", "Task description")
	addCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high")
	addCmd.Flags().StringP("category", "c", "", "Category label")
	addCmd.Flags().String("due", "", "Due date: yyyy-mm-dd, X days, X weeks")
}
