package cmd

import (
	"github.com/spf13/cobra"

	jive "github.com/jive-lang/jive"
)

var dialectPath string

var rootCmd = &cobra.Command{
	Use:   "jive",
	Short: "jive - a slang-flavored scripting language",
	Long: `jive runs scripts written in slang that is rewritten into canonical
keywords before execution: bet/nocap become if/else, finna becomes let,
grind becomes for, and so on.

Commands:
  run      Run a .jive script
  repl     Start the interactive loop
  version  Print version info`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI; main turns a non-nil error into exit status 1.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dialectPath, "dialect", "", "TOML file with extra slang words")
}

// newRewriter builds the preprocessing rewriter, merging --dialect if given.
func newRewriter() (*jive.Rewriter, error) {
	rw := jive.NewRewriter()
	if dialectPath != "" {
		if err := rw.LoadDialect(dialectPath); err != nil {
			return nil, err
		}
	}
	return rw, nil
}
