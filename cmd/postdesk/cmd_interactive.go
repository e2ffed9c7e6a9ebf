package main

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"postdesk/cmd/postdesk/app"
	"postdesk/cmd/postdesk/ui"
	"postdesk/internal/api"
	"postdesk/internal/nav"
)

// newCmd opens the creation form
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Write a new post",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(nav.Create())
	},
}

// showCmd opens a single post
var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Read one post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runInteractive(nav.Detail(id))
	},
}

func runListUI(cmd *cobra.Command, args []string) error {
	return runInteractive(nav.List())
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}

// newAppModel wires the router from the resolved configuration.
func newAppModel(start nav.Intent) app.Model {
	client := api.NewClient(cfg.API.BaseURL, cfg.GetRequestTimeout())
	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	return app.New(client, styles, app.Options{SuccessDisplay: cfg.GetSuccessDisplay()}, start)
}

func runInteractive(start nav.Intent) error {
	p := tea.NewProgram(newAppModel(start), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("postdesk exited: %w", err)
	}
	return nil
}
