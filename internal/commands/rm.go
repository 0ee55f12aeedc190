package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskwell/internal/db"
)

var rmCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		if err := db.DeleteTask(uint(taskID)); err != nil {
			if errors.Is(err, db.ErrTaskNotFound) {
				fmt.Printf("Task #%d does not exist, nothing to delete.\n", taskID)
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("Deleted task #%d\n", taskID)
	}),
}
