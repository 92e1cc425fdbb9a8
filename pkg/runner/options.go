// Package runner converts many inputs concurrently and aggregates the results.
package runner

import "github.com/yaklabco/msgmark/pkg/config"

// DefaultMaxFileSize is the largest input file read when Options.MaxFileSize
// is zero.
const DefaultMaxFileSize int64 = 16 << 20

// Options controls a batch run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) converted
	// when walking directories. Defaults to config.DefaultExtensions.
	// Files named explicitly in Paths are converted whatever their extension.
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir. "**" matches any number of path segments.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// MaxFileSize limits the size of files read. 0 means DefaultMaxFileSize;
	// negative disables the limit.
	MaxFileSize int64

	// Write stores each file's result as JSON next to the file.
	Write bool
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions
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

func (o Options) effectiveMaxFileSize() int64 {
	if o.MaxFileSize == 0 {
		return DefaultMaxFileSize
	}
	return o.MaxFileSize
}
