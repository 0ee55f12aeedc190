package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taskwell/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "taskwell",
	Short: "A single-user task list with a web UI",
	Long: `taskwell is a small task list manager. It serves a web interface
for creating, filtering, and completing tasks, and offers the same
operations from the command line.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskwell %s (commit %s, built %s)\n", version, commit, date)
	},
}

// initConfig wires viper: flag values, TASKWELL_* environment
// variables, and an optional ~/.taskwell/taskwell.yaml, in that order
// of precedence.
func initConfig() {
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("debug", false)

	viper.SetEnvPrefix("taskwell")
	viper.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.taskwell")
	}
	viper.SetConfigName("taskwell")
	viper.SetConfigType("yaml")
	// A missing config file is fine; anything else is worth surfacing.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: config file: %v\n", err)
		}
	}
}

// initDB initializes the database and exits on failure
func initDB() {
	if err := db.Initialize(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withDB wraps a command function to initialize the database first
func withDB(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		initDB()
		defer db.Close()
		fn(cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite database (default ~/.taskwell/taskwell.db)")
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(versionCmd)
}
