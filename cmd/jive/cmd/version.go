package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	jive "github.com/jive-lang/jive"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("jive v%s\n", jive.Version)
		fmt.Printf("  Build Date: %s\n", jive.BuildDate)
		fmt.Printf("  Go Version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
