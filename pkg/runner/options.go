// Package runner provides multi-file parse orchestration: it discovers
// source files, parses each into its own Document concurrently, and
// aggregates syntax diagnostics. A Document is never shared between
// goroutines; concurrency is strictly one-document-per-worker.
package runner

import "github.com/cedartree/cedar/pkg/config"

// Options controls multi-file parsing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered parseable. Defaults via DefaultExtensions().
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Language forces a specific language table for every file instead of
	// per-file detection.
	Language string

	// IncludeTrees renders each file's S-expression into its outcome.
	IncludeTrees bool

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of parseable file extensions.
func DefaultExtensions() []string {
	return []string{".json", ".js", ".calc"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
