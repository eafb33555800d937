// Package grep is the orchestration layer over the scan engine: it expands
// paths into files, runs one pass per source, and owns the per-source file
// handling around replace and review runs. Sources are processed one at a
// time, each with fresh pass state; a source that cannot be opened is skipped
// with a warning and the run continues.
package grep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/cgrep-dev/cgrep/formatter"
	"github.com/cgrep-dev/cgrep/internal"
	"github.com/cgrep-dev/cgrep/internal/editor"
	"github.com/cgrep-dev/cgrep/internal/types"
	"github.com/cgrep-dev/cgrep/scanner"
)

// progressThreshold is the file count past which a replace run shows a bar.
const progressThreshold = 1

// Runner ties an engine to a configuration and drives it over paths.
type Runner struct {
	logger *zap.Logger
	config Config
	engine *internal.Engine
	editor *editor.Editor // review mode only

	// Out receives reports; replace output goes to files or stdout instead.
	Out io.Writer
}

// NewRunner creates a runner. editor may be nil outside review mode.
func NewRunner(logger *zap.Logger, config Config, engine *internal.Engine, ed *editor.Editor) *Runner {
	return &Runner{
		logger: logger,
		config: config,
		engine: engine,
		editor: ed,
		Out:    os.Stdout,
	}
}

// ProcessPaths runs one pass per source. Paths may name files or
// directories; directories are walked with the configured extensions. With
// no paths the run is a single standard-input pass writing to standard
// output.
func (r *Runner) ProcessPaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return r.processStdin()
	}

	files := r.expandPaths(paths)
	r.logger.Debug("processing sources",
		zap.Stringer("mode", r.engine.Mode),
		zap.Int("files", len(files)))

	var bar *progressbar.ProgressBar
	if r.engine.Mode == types.ModeReplace && len(files) > progressThreshold {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("replacing"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := r.ProcessFile(ctx, file)
		if errors.Is(err, editor.ErrQuit) {
			r.logger.Debug("review session stopped", zap.String("file", file))
			return nil
		}
		if err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Println()
	}
	return nil
}

// expandPaths turns the argument list into the ordered file list of the run.
// Paths that cannot be accessed are skipped with a warning.
func (r *Runner) expandPaths(paths []string) []string {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			r.logger.Warn("cannot open", zap.String("path", path), zap.Error(err))
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := scanner.New(path, r.config.Extensions...).Scan()
		if err != nil {
			r.logger.Warn("cannot walk directory", zap.String("path", path), zap.Error(err))
			continue
		}
		files = append(files, found...)
	}
	return files
}

// ProcessFile runs one pass over one named file. Open and read failures are
// warnings, not errors: the run continues with the next source. Errors are
// returned only for the fatal categories, temp-file handling and the editor
// collaborator.
func (r *Runner) ProcessFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		r.logger.Warn("cannot open", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	switch r.engine.Mode {
	case types.ModeReplace:
		return r.replaceFile(f, path)
	case types.ModeReview:
		return r.reviewFile(ctx, f, path)
	default:
		if _, err := r.engine.Run(path, f, r.Out); err != nil {
			r.logger.Warn("skipping source", zap.String("path", path), zap.Error(err))
		}
		return nil
	}
}

// processStdin runs the single stdin pass. Replace writes the rewritten
// stream to stdout; every other mode reports to the runner's output.
func (r *Runner) processStdin() error {
	w := r.Out
	if r.engine.Mode == types.ModeReplace {
		w = os.Stdout
	}
	if _, err := r.engine.Run("", os.Stdin, w); err != nil {
		return err
	}
	return nil
}

// replaceFile writes the rewritten source to a temp file beside the
// original, then renames it over the original only when the pass actually
// changed something. The original's permission bits survive the rename.
func (r *Runner) replaceFile(f *os.File, path string) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "cgr_*")
	if err != nil {
		return fmt.Errorf("cannot open tmp file: %w", err)
	}

	res, runErr := r.engine.Run(path, f, tmp)
	closeErr := tmp.Close()
	if runErr != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())
		if runErr != nil {
			r.logger.Warn("skipping source", zap.String("path", path), zap.Error(runErr))
			return nil
		}
		return fmt.Errorf("writing tmp file: %w", closeErr)
	}

	if !res.Changed {
		return os.Remove(tmp.Name())
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot restore mode of %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot replace %s: %w", path, err)
	}
	return nil
}

// reviewFile collects the findings of one source and, when there are any,
// writes them to a transient report and hands (report, source) to the
// editor. The report file is removed when the session ends.
func (r *Runner) reviewFile(ctx context.Context, f *os.File, path string) error {
	res, err := r.engine.Run(path, f, io.Discard)
	if err != nil {
		r.logger.Warn("skipping source", zap.String("path", path), zap.Error(err))
		return nil
	}
	if len(res.Findings) == 0 {
		return nil
	}

	tmp, err := os.CreateTemp("", "cgr_*")
	if err != nil {
		return fmt.Errorf("cannot open tmp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := formatter.WriteFindings(tmp, res.Findings); err != nil {
		tmp.Close()
		return fmt.Errorf("writing findings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing findings: %w", err)
	}

	return r.editor.Review(ctx, tmp.Name(), path)
}

// Watch re-runs the scan on files as they change, until ctx is done.
func (r *Runner) Watch(ctx context.Context, paths []string) error {
	watcher, err := internal.NewWatcher(r.logger, r.config.Extensions, func(path string) {
		r.logger.Debug("rescanning", zap.String("path", path))
		if err := r.ProcessFile(ctx, path); err != nil {
			r.logger.Error("rescan failed", zap.String("path", path), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	if err := watcher.StartWatching(paths); err != nil {
		_ = watcher.StopWatching()
		return err
	}

	<-ctx.Done()
	return watcher.StopWatching()
}
