package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cedartree/cedar/internal/logging"
	"github.com/cedartree/cedar/pkg/document"
	"github.com/cedartree/cedar/pkg/langdetect"
	"github.com/cedartree/cedar/pkg/langtable"
)

// Runner orchestrates multi-file parsing.
type Runner struct {
	log *log.Logger
}

// New creates a new Runner. A nil logger defers to the context passed to
// Run (logging.FromContext).
func New(logger *log.Logger) *Runner {
	return &Runner{log: logger}
}

func (r *Runner) logger(ctx context.Context) *log.Logger {
	if r.log != nil {
		return r.log
	}
	return logging.FromContext(ctx)
}

// Run discovers files under opts.Paths and parses them concurrently, one
// Document per file. It returns outcomes in deterministic (path) order and
// respects context cancellation between files.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	logger := r.logger(ctx)
	logger.Debug("batch parse starting",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs)

	// Each worker owns its files' Documents outright; outcomes land in a
	// pre-sized slice so no ordering work is needed afterwards.
	outcomes := make([]FileOutcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("run cancelled: %w", err)
			}
			outcomes[i] = r.processFile(logger, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result, nil
}

// processFile parses one file into a fresh Document and extracts its
// outcome. Syntax errors are diagnostics, not errors; only an unreadable
// file, an unresolvable language, or a corrupt table set outcome.Error.
func (r *Runner) processFile(logger *log.Logger, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}

	langName, table, err := resolveLanguage(path, content, opts)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Language = langName

	doc := document.New(document.WithLogger(logger))
	defer doc.Close()
	if err := doc.SetLanguage(table); err != nil {
		outcome.Error = err
		return outcome
	}
	if err := doc.SetInput(document.BytesInput(content)); err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.DocumentID = doc.ID().String()

	root := doc.RootNode()
	defer root.Close()

	outcome.SizeBytes = root.Size().Bytes
	outcome.SizeChars = root.Size().Chars
	outcome.Diagnostics = collectDiagnostics(path, content, root)
	if opts.IncludeTrees {
		outcome.SExpr = root.String()
	}
	return outcome
}

// resolveLanguage picks the language table for a file: an explicit
// --language override first, then the config's extension map, then content
// detection, then the configured default.
func resolveLanguage(path string, content []byte, opts Options) (string, langtable.Table, error) {
	name := opts.Language
	if name == "" && opts.Config != nil {
		name = opts.Config.Languages[strings.ToLower(filepath.Ext(path))]
	}
	if name == "" {
		name = langdetect.DetectFile(path, content)
	}
	if name == "" && opts.Config != nil {
		name = opts.Config.DefaultLanguage
	}
	if name == "" {
		return "", nil, fmt.Errorf("cannot determine language for %s", path)
	}

	table, ok := langtable.Lookup(name)
	if !ok {
		return "", nil, fmt.Errorf("unknown language %q for %s (known: %s)",
			name, path, strings.Join(langtable.Names(), ", "))
	}
	return name, table, nil
}
