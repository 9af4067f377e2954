package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	jive "github.com/jive-lang/jive"
)

const (
	historyFile = ".jive_history"
	promptMain  = "jive> "

	// ExitKeyword ends the session when it appears as a word in the input.
	ExitKeyword = "bounce"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive loop",
	Run: func(_ *cobra.Command, _ []string) {
		// The loop always ends with a non-zero status (empty line, exit
		// keyword, or EOF), per the language's host contract.
		os.Exit(runRepl())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// isExitInput reports whether the input is empty or contains the exit
// keyword as a whole word.
func isExitInput(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	for _, w := range strings.FieldsFunc(line, func(r rune) bool {
		return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	}) {
		if w == ExitKeyword {
			return true
		}
	}
	return false
}

func runRepl() int {
	fmt.Printf("jive %s REPL\nEmpty line or %q exits.\n", jive.Version, ExitKeyword)

	rw, err := newRewriter()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		return 1
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	// One interpreter for the whole session: declarations persist in Global
	// across inputs.
	ip := jive.NewInterpreter()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 1
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
			return 1
		}
		if isExitInput(line) {
			return 1
		}

		src := rw.Rewrite(line)
		v, err := ip.EvalSource(src)
		if err != nil {
			wrapped := jive.WrapErrorWithName(err, "<repl>", src)
			fmt.Fprintln(os.Stderr, color.RedString(wrapped.Error()))
			continue
		}
		fmt.Println(color.CyanString(jive.FormatValue(v)))
		ln.AppendHistory(line)
	}
}
