// Package cmd provides the root command and CLI setup for pyscaff.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pyscaff/pyscaff/internal/adapter"
	"github.com/pyscaff/pyscaff/internal/controller"
	"github.com/pyscaff/pyscaff/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var pythonAdapter adapter.PythonFileAdapter
var formatterAdapter adapter.FormatterAdapter
var reportStore adapter.ReportStore
var synthesizer domain.Synthesizer
var emitter domain.Emitter
var workflow domain.Workflow
var ui controller.UI

// reportsDirFlag is a root-level flag shared by commands that read/write run summaries.
var reportsDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	pythonAdapter = adapter.NewLocalPythonFileAdapter()
	formatterAdapter = adapter.NewLocalFormatterAdapter()
	reportStore = adapter.NewLocalReportStore()
	synthesizer = domain.NewSynthesizer()
	emitter = domain.NewEmitter(formatterAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		pythonAdapter,
		reportStore,
		ui,
		synthesizer,
		emitter,
	)
}

const excludePatternsHelp = `Exclude patterns are regular expressions matched against
repo-relative paths:
  - \.venv/        skip virtual environments
  - migrations/    skip generated migration modules
  - legacy_.*\.py  skip individual legacy files`

const rootLongDescription = `Pyscaff generates pytest scaffolds for a Python repository by reading
type annotations and control flow from the source and synthesizing test
scenarios for every function and method it finds.

` + excludePatternsHelp

const generateLongDescription = `Generate pytest scaffolds for every Python source file under the given
repository path and write them to a single output file.

` + excludePatternsHelp

const listLongDescription = `List Python source files under the given repository path together with
the number of test scenarios each would produce.

` + excludePatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pyscaff",
		Short: "Pytest scaffold generator for Python repositories",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(
			&reportsDirFlag, reportsFlagName,
			defaultReportsDir,
			"directory for run summaries",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reportsFlagName), reportsFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	configureLogger("", viper.GetBool(logVerboseKey))

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
