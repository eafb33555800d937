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
	commentsLineNumbers bool
	commentsExpr        string
)

var commentsCmd = &cobra.Command{
	Use:   "comments [paths...]",
	Short: "List comment bodies",
	Long: `Comments lists the body of every /* */ comment, tagged with the line
its opening delimiter appeared on. An unterminated comment runs to the end
of the source.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var pat *pattern.Pattern
		if commentsExpr != "" {
			pat = mustPattern(commentsExpr)
		}
		engine := internal.NewEngine(types.ModeComments, pat)
		engine.LineNumbers = commentsLineNumbers

		runner := grep.NewRunner(logger, mustConfig(), engine, nil)
		if err := runner.ProcessPaths(ctx, args); err != nil {
			logger.Fatal("Listing comments failed", zap.Error(err))
		}
	},
}

func init() {
	commentsCmd.Flags().BoolVarP(&commentsLineNumbers, "line-numbers", "n", false, "Print line numbers on listed comments")
	commentsCmd.Flags().StringVarP(&commentsExpr, "expr", "e", "", "Only list comments fully matching this pattern")
}
