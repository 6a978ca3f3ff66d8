package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pyscaff/pyscaff/internal/controller"
	"github.com/pyscaff/pyscaff/internal/domain"
	m "github.com/pyscaff/pyscaff/internal/model"
)

var viewInteractiveFlag bool

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the latest run summary",
		Long:  "View the most recent run summary from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(reportsFlagName))

			if viewInteractiveFlag {
				summary, err := reportStore.LoadLatest(reportsPath)
				if err != nil {
					return fmt.Errorf("load summary: %w", err)
				}

				return controller.NewTUI(cmd.OutOrStdout()).BrowseSummary(summary)
			}

			return workflow.View(context.Background(), domain.ViewArgs{Reports: reportsPath})
		},
	}

	cmd.Flags().BoolVarP(&viewInteractiveFlag, interactiveFlagName, "i", false, "browse the summary in a scrollable viewer")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
