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

var (
	searchLineNumbers bool
	searchFilesOnly   bool
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern> [paths...]",
	Short: "Report lines whose identifier chains match the pattern",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide a pattern")
			os.Exit(1)
		}
		paths := args[1:]
		if searchFilesOnly && len(paths) == 0 {
			fmt.Println("error: -l requires file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		mode := types.ModeSearch
		if searchFilesOnly {
			mode = types.ModeFilesOnly
		}
		engine := internal.NewEngine(mode, mustPattern(args[0]))
		engine.LineNumbers = searchLineNumbers

		runner := grep.NewRunner(logger, mustConfig(), engine, nil)
		if err := runner.ProcessPaths(ctx, paths); err != nil {
			logger.Fatal("Search failed", zap.Error(err))
		}
	},
}

func init() {
	searchCmd.Flags().BoolVarP(&searchLineNumbers, "line-numbers", "n", false, "Print line numbers on found lines")
	searchCmd.Flags().BoolVarP(&searchFilesOnly, "files-only", "l", false, "List the files with hits, not the lines")
}
