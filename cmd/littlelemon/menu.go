package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/littlelemon/pkg/app/components"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List the cached menu",
	Long:  "Display the locally cached menu in a table, optionally filtered by a search phrase and a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		category, _ := cmd.Flags().GetString("category")

		controller, err := openCLI(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		items, err := controller.SearchMenu(search, category)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			state, _ := controller.SyncState()
			if state.NeedsSync() {
				fmt.Fprintln(out, "🍋 The menu has not been downloaded yet. Run 'littlelemon sync' first.")
			} else {
				fmt.Fprintln(out, "🍋 No dishes match your search.")
			}
			return nil
		}

		columns := []table.Column{
			{Title: "ID", Width: 4},
			{Title: "Dish", Width: 24},
			{Title: "Category", Width: 12},
			{Title: "Price", Width: 10},
			{Title: "Description", Width: 50},
		}

		rows := []table.Row{}
		for _, item := range items {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", item.ID),
				truncateString(item.Title, 22),
				item.Category,
				components.FormatPrice(item.Price),
				truncateString(item.Description, 48),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)+1), // the header row counts toward the height
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = lipgloss.NewStyle() // not interactive, no highlighted row
		t.SetStyles(s)

		fmt.Fprintf(out, "\n🍋 Little Lemon menu (%d dishes)\n\n", len(items))
		fmt.Fprintln(out, t.View())
		return nil
	},
}

func init() {
	menuCmd.Flags().StringP("search", "s", "", "only dishes whose title contains this phrase")
	menuCmd.Flags().StringP("category", "c", "", "only dishes in this category (starters, mains, desserts)")
}

func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
