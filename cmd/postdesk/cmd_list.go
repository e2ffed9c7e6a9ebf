package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"postdesk/cmd/postdesk/ui"
	"postdesk/internal/api"
	"postdesk/internal/posts"
)

var searchTerm string

// listCmd prints the posts once without the interactive client
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print posts as a table",
	Long: `Fetches the posts once, keeps those whose title, author or content
contains the --search term (case-insensitive), and prints them.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetRequestTimeout())
	defer cancel()

	client := api.NewClient(cfg.API.BaseURL, cfg.GetRequestTimeout())
	records, err := client.ListPosts(ctx)
	if err != nil {
		logger.Error("list failed", zap.Error(err))
		if errors.Is(err, api.ErrFetchFailed) {
			return errors.New(ui.FetchFailedMessage)
		}
		return err
	}

	filtered := posts.Filter(records, searchTerm)
	logger.Debug("posts fetched", zap.Int("total", len(records)), zap.Int("shown", len(filtered)), zap.String("search", searchTerm))

	out := cmd.OutOrStdout()
	if len(filtered) == 0 {
		if searchTerm != "" {
			fmt.Fprintf(out, "No posts match %q.\n", searchTerm)
		} else {
			fmt.Fprintln(out, "No posts yet.")
		}
		return nil
	}

	table := ui.NewPostTable(fmt.Sprintf("%d of %d posts", len(filtered), len(records)))
	table.AddPosts(filtered)
	fmt.Fprint(out, table.View(ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))))
	return nil
}
