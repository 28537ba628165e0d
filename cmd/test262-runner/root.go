package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linusg/libjs-test262/realm"
	"github.com/linusg/libjs-test262/runner"
)

var rootCmd = &cobra.Command{
	Use:   "test262-runner [harness-files...]",
	Short: "Single-run test262 conformance harness",
	Long: `test262-runner executes one conformance test against a fresh realm
with the $262 host object and the print function installed.

The harness files are run first, in order, then the target script
(--target, or standard input). Everything the scripts print is captured
and the run's outcome is reported as a single JSON record on standard
output:

  echo 'print("hi"); throw new TypeError("nope");' | test262-runner
  {"error":{"phase":"runtime","type":"TypeError","details":"nope"},"output":"hi\n"}`,
	Args: cobra.ArbitraryArgs,
	Run:  runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("use-bytecode", "b", false, "Compile scripts in one step instead of parsing first")
	rootCmd.Flags().StringP("target", "t", "", "Target script file (default: stdin)")
	rootCmd.Flags().Bool("strict", false, "Run the target's strict variant")
}

// engineMode maps the compilation flag to the realm's pipeline choice.
func engineMode(cmd *cobra.Command) realm.Mode {
	if useBytecode, _ := cmd.Root().PersistentFlags().GetBool("use-bytecode"); useBytecode {
		return realm.ModeCompiled
	}
	return realm.ModeAST
}

func runRoot(cmd *cobra.Command, args []string) {
	target, _ := cmd.Flags().GetString("target")
	strict, _ := cmd.Flags().GetBool("strict")

	opts := []runner.Option{
		runner.WithMode(engineMode(cmd)),
		runner.WithHarnessFiles(args...),
		runner.WithTarget(target),
	}
	if strict {
		opts = append(opts, runner.WithStrict())
	}

	res, err := runner.Run(opts...)
	if err != nil {
		// Redirection failed; fd 1 cannot be trusted to carry a record.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := res.Write(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
