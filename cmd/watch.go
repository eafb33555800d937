package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cgrep-dev/cgrep/grep"
	"github.com/cgrep-dev/cgrep/internal"
	"github.com/cgrep-dev/cgrep/internal/types"
)

var watchLineNumbers bool

var watchCmd = &cobra.Command{
	Use:   "watch <pattern> <paths...>",
	Short: "Re-run the search whenever a watched file changes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Println("error: Please provide a pattern and file or directory paths")
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		engine := internal.NewEngine(types.ModeSearch, mustPattern(args[0]))
		engine.LineNumbers = watchLineNumbers

		runner := grep.NewRunner(logger, mustConfig(), engine, nil)
		if err := runner.Watch(ctx, args[1:]); err != nil {
			logger.Fatal("Watch failed", zap.Error(err))
		}
	},
}

func init() {
	watchCmd.Flags().BoolVarP(&watchLineNumbers, "line-numbers", "n", false, "Print line numbers on found lines")
}
