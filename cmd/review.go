package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cgrep-dev/cgrep/grep"
	"github.com/cgrep-dev/cgrep/internal"
	"github.com/cgrep-dev/cgrep/internal/editor"
	"github.com/cgrep-dev/cgrep/internal/types"
)

var (
	reviewAtStart bool
	reviewEditor  string
)

var reviewCmd = &cobra.Command{
	Use:   "review <pattern> <paths...>",
	Short: "Open an editor session on the findings of each file",
	Long: `Review collects every matching chain suffix as a finding, writes the
findings of each file to a transient error list, and opens the editor on
(list, file). Exit the editor nonzero to stop the run. The editor comes from
--editor, the configuration file, or $EDITOR, in that order.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Println("error: Please provide a pattern and file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config := mustConfig()
		command := reviewEditor
		if command == "" {
			command = config.EditorCommand()
		}
		ed, err := editor.New(command)
		if err != nil {
			logger.Fatal("Failed to configure editor", zap.Error(err))
		}

		engine := internal.NewEngine(types.ModeReview, mustPattern(args[0]))
		engine.AtStart = reviewAtStart

		runner := grep.NewRunner(logger, config, engine, ed)
		if err := runner.ProcessPaths(ctx, args[1:]); err != nil {
			logger.Fatal("Review failed", zap.Error(err))
		}
	},
}

func init() {
	reviewCmd.Flags().BoolVar(&reviewAtStart, "at-start", false, "Report multi-line chains at their first component")
	reviewCmd.Flags().StringVar(&reviewEditor, "editor", "", "Editor command for the review session")
}
