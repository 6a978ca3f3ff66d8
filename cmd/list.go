package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pyscaff/pyscaff/internal/domain"
	m "github.com/pyscaff/pyscaff/internal/model"
)

var listParallelFlag int

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <repo-path>",
		Short: "List source files and scenario counts",
		Long:  listLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Estimate(context.Background(), domain.EstimateArgs{
				Root:    m.Path(args[0]),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(listParallelConfigKey),
			})
		},
	}

	configureListFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func configureListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&listParallelFlag, listParallelFlagName, "p", defaultListParallel, "number of files to analyze in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(listParallelFlagName), listParallelConfigKey)
}
