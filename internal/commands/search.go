package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks by title or description",
	Long: `Search tasks whose title or description contains the query,
case insensitively. The same filter flags as 'ls' apply on top of the
search.`,
	Args: cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		opts := listingFlagOptions(cmd)
		opts.Search = strings.Join(args, " ")
		runListing(opts)
	}),
}

func init() {
	addListingFlags(searchCmd)
}
