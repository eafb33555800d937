package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cgrep-dev/cgrep/grep"
	"github.com/cgrep-dev/cgrep/internal/pattern"
)

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cgrep [pattern] [paths...]",
	Short: "cgrep - grep for whole C identifier chains",
	Long: `cgrep matches whole identifier chains in C-like source instead of
substrings: a pattern for tmp never matches tmpname, and ptr->val matches
even when the chain is split by comments, whitespace, or line breaks.
Patterns are regular expressions wrapped in ^( )$, so the whole identifier
chain must match.`,
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'cgrep' is entered
			_ = cmd.Help()
			return
		}
		// Format: cgrep pattern [path1 path2 ...] => behaves like the search subcommand
		searchCmd.Run(searchCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the configuration file (default .cgrep.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole run")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(stringsCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(watchCmd)
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot initialize logger: %v\n", err)
		os.Exit(1)
	}
	return l
}

// mustConfig loads the run configuration; a broken config file is a fatal
// configuration error.
func mustConfig() grep.Config {
	config, err := grep.LoadConfig(cfgFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	return config
}

// mustPattern compiles the full-match predicate; an illegal pattern is a
// fatal configuration error.
func mustPattern(expr string) *pattern.Pattern {
	p, err := pattern.Compile(expr)
	if err != nil {
		logger.Fatal("Illegal pattern", zap.Error(err))
	}
	return p
}
