package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskwell/internal/db"
)

var doneCmd = &cobra.Command{
	Use:     "done [task-id]",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task between done and active",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		task, err := db.ToggleTask(uint(taskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if task.Completed {
			fmt.Printf("Marked task #%d as done: %s\n", task.ID, task.Title)
		} else {
			fmt.Printf("Marked task #%d as active again: %s\n", task.ID, task.Title)
		}
	}),
}
