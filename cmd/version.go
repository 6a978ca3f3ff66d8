package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pyscaff version",
		Long:  "Print the pyscaff release version, the commit it was built from and the Go toolchain.",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("pyscaff", buildVersion())
		},
	}
}

// buildVersion assembles a readable version string from the embedded build
// info. Module-unaware builds fall back to the devel label.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	version := info.Main.Version
	if version == "" || version == "(devel)" {
		version = "devel"
	}

	var revision string
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			revision = setting.Value
			break
		}
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}

	if revision == "" {
		return fmt.Sprintf("%s (%s)", version, info.GoVersion)
	}

	return fmt.Sprintf("%s (%s, %s)", version, revision, info.GoVersion)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
