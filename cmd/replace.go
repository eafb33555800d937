package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cgrep-dev/cgrep/grep"
	"github.com/cgrep-dev/cgrep/internal"
	"github.com/cgrep-dev/cgrep/internal/types"
)

var replaceCmd = &cobra.Command{
	Use:   "replace <pattern> <replacement> [paths...]",
	Short: "Rewrite matched bare identifiers",
	Long: `Replace rewrites every bare identifier that fully matches the pattern
with the replacement text. Chain components are never touched: replacing foo
leaves foo.bar alone. Files change in place; with no paths the rewritten
source is written to standard output.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Println("error: Please provide a pattern and a replacement")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine := internal.NewEngine(types.ModeReplace, mustPattern(args[0]))
		engine.Replacement = args[1]

		runner := grep.NewRunner(logger, mustConfig(), engine, nil)
		if err := runner.ProcessPaths(ctx, args[2:]); err != nil {
			logger.Fatal("Replace failed", zap.Error(err))
		}
	},
}
