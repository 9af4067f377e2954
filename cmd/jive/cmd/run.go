package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	jive "github.com/jive-lang/jive"
)

// FileExt is the fixed extension for jive source files. run ignores anything
// else without raising an error.
const FileExt = ".jive"

var runCmd = &cobra.Command{
	Use:   "run <file" + FileExt + ">",
	Short: "Run a script",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runFile(args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFile(path string) error {
	if !strings.EqualFold(filepath.Ext(path), FileExt) {
		return nil // not a jive file; silently ignored
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jive: cannot read %s: %v\n", path, err)
		return err
	}

	rw, err := newRewriter()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		return err
	}
	src := rw.Rewrite(string(raw))

	ip := jive.NewInterpreter()
	if _, err := ip.EvalSource(src); err != nil {
		wrapped := jive.WrapErrorWithName(err, filepath.Base(path), src)
		fmt.Fprintln(os.Stderr, color.RedString(wrapped.Error()))
		return err
	}
	return nil
}
