package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dop251/goja"
	"github.com/spf13/cobra"

	"github.com/linusg/libjs-test262/realm"
	"github.com/linusg/libjs-test262/runner"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive JavaScript REPL with a persistent realm",
	Long: `Start an interactive REPL against a single realm with the $262 host
object installed. State persists between lines.

Features:
  - Command history (up/down arrows)
  - History search (Ctrl+R)
  - Multi-line input (end line with \)

Type 'exit' or 'quit' to end the session, or press Ctrl+D.`,
	Run: runRepl,
}

func init() {
	replCmd.Flags().String("history", "", "History file path (default: ~/.test262_history)")
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) {
	historyFile, _ := cmd.Flags().GetString("history")
	if historyFile == "" {
		home, _ := os.UserHomeDir()
		historyFile = filepath.Join(home, ".test262_history")
	}

	rlm := realm.New(realm.WithMode(engineMode(cmd)), realm.WithStdout(os.Stdout))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "test262-runner REPL (type 'exit' to quit, Ctrl+D to exit)")

	var multiLine strings.Builder
	inMultiLine := false

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if inMultiLine {
					multiLine.Reset()
					inMultiLine = false
					rl.SetPrompt("> ")
				}
				continue
			}
			if err == io.EOF {
				fmt.Println()
				break
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			break
		}

		// Handle multi-line input
		if strings.HasSuffix(line, "\\") {
			multiLine.WriteString(strings.TrimSuffix(line, "\\"))
			multiLine.WriteString("\n")
			inMultiLine = true
			rl.SetPrompt("... ")
			continue
		}

		if inMultiLine {
			multiLine.WriteString(line)
			line = multiLine.String()
			multiLine.Reset()
			inMultiLine = false
			rl.SetPrompt("> ")
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		v, err := rlm.RunScript("<repl>", line)
		if err != nil {
			te := runner.Classify(rlm, err)
			if te.Type != "" {
				fmt.Fprintf(os.Stderr, "Uncaught %s: %s\n", te.Type, te.Details)
			} else {
				fmt.Fprintf(os.Stderr, "Uncaught exception: %s\n", te.Details)
			}
			continue
		}
		if v != nil && !goja.IsUndefined(v) {
			// A hostile toString must not end the session.
			if ex := rlm.Runtime().Try(func() { fmt.Println(v.String()) }); ex != nil {
				fmt.Fprintln(os.Stderr, "Error: result is not printable")
			}
		}
	}
}
