package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cgrep-dev/cgrep/grep"
	"github.com/cgrep-dev/cgrep/internal"
	"github.com/cgrep-dev/cgrep/internal/pattern"
	"github.com/cgrep-dev/cgrep/internal/types"
)

var (
	stringsLineNumbers bool
	stringsExpr        string
)

var stringsCmd = &cobra.Command{
	Use:   "strings [paths...]",
	Short: "List string literal bodies",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var pat *pattern.Pattern
		if stringsExpr != "" {
			pat = mustPattern(stringsExpr)
		}
		engine := internal.NewEngine(types.ModeStrings, pat)
		engine.LineNumbers = stringsLineNumbers

		runner := grep.NewRunner(logger, mustConfig(), engine, nil)
		if err := runner.ProcessPaths(ctx, args); err != nil {
			logger.Fatal("Listing strings failed", zap.Error(err))
		}
	},
}

func init() {
	stringsCmd.Flags().BoolVarP(&stringsLineNumbers, "line-numbers", "n", false, "Print line numbers on listed strings")
	stringsCmd.Flags().StringVarP(&stringsExpr, "expr", "e", "", "Only list strings fully matching this pattern")
}
