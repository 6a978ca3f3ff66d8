package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pyscaff/pyscaff/internal/domain"
	m "github.com/pyscaff/pyscaff/internal/model"
)

// artifactPathFlag is where the aggregated test file is written.
var artifactPathFlag string

// verboseFlag annotates every generated test with its scenario description.
var verboseFlag bool

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <repo-path>",
		Short: "Generate pytest scaffolds for a Python repository",
		Long:  generateLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Generate(context.Background(), domain.GenerateArgs{
				Root:    m.Path(args[0]),
				Output:  m.Path(viper.GetString(outputFlagName)),
				Reports: m.Path(viper.GetString(reportsFlagName)),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Verbose: viper.GetBool(verboseConfigKey),
			})
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&artifactPathFlag, outputFlagName, "o", defaultArtifactPath, "output file for the generated tests")
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputFlagName)

	cmd.Flags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultVerbose, "annotate each test with its scenario description")
	bindFlagToConfig(cmd.Flags().Lookup(verboseFlagName), verboseConfigKey)
}
