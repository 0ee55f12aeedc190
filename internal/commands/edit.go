package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskwell/internal/db"
	"taskwell/internal/parser"
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit an existing task",
	Long: `Edit an existing task. Fields not given as flags keep their
current values; the store applies the result as a full overwrite.

Usage:
  taskwell edit 42 --title "New title" --priority high
  taskwell edit 42 --due ""    (clears the due date)`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: Invalid task ID '%s'. Please provide a valid numeric ID.\n", args[0])
			return
		}

		task, err := db.GetTaskByID(uint(taskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		// Start from the current values, then overlay supplied flags.
		req := db.TaskRequest{
			Title:       task.Title,
			Description: task.Description,
			Priority:    task.Priority,
			Category:    task.Category,
			DueDate:     task.DueDate,
		}

		if cmd.Flags().Changed("title") {
			req.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("description") {
			req.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("priority") {
			req.Priority, _ = cmd.Flags().GetString("priority")
		}
		if cmd.Flags().Changed("category") {
			req.Category, _ = cmd.Flags().GetString("category")
		}
		if cmd.Flags().Changed("due") {
			due, _ := cmd.Flags().GetString("due")
			req.DueDate, err = parser.ParseDueDate(due)
			if err != nil {
				fmt.Printf("Error parsing due date: %v\n", err)
				return
			}
		}

		updated, err := db.UpdateTask(uint(taskID), req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("Updated task #%d: %s\n", updated.ID, updated.Title)
	}),
}

func init() {
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
	editCmd.Flags().StringP("priority", "p", "", "New priority: low, medium, high")
	editCmd.Flags().StringP("category", "c", "", "New category")
	editCmd.Flags().String("due", "", "New due date: yyyy-mm-dd, X days, X weeks (empty clears)")
}
