package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/msgmark/pkg/fsutil"
)

// Discover resolves opts.Paths into a sorted, deduplicated list of absolute
// file paths.
//
// Files named explicitly are kept whatever their extension, unless an exclude
// glob matches them. Directories are walked for files with a configured
// extension; hidden entries, excluded paths and result sidecar files are
// skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}

		if !d.excluded(absPath) {
			d.add(absPath)
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	ctx        context.Context //nolint:containedctx // Scoped to one Discover call.
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// walk recursively collects matching files under root.
func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && (isHidden(entry.Name()) || d.excluded(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(entry.Name()) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Inaccessible targets are skipped.
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks || d.excluded(path) {
					return nil
				}
				// Walk the target; WalkDir does not descend into symlinks.
				return d.walk(target)
			}
		}

		if d.matches(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// matches reports whether a walked file should be converted.
func (d *discoverer) matches(path string) bool {
	if strings.HasSuffix(path, fsutil.SidecarSuffix) {
		return false
	}
	if !hasExtension(path, d.extensions) {
		return false
	}
	return !d.excluded(path)
}

// excluded reports whether path matches an exclude glob, relative to the
// working directory.
func (d *discoverer) excluded(absPath string) bool {
	rel, err := filepath.Rel(d.workDir, absPath)
	if err != nil {
		rel = absPath
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range d.opts.ExcludeGlobs {
		if matchGlob(rel, pattern) {
			return true
		}
	}
	return false
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

// hasExtension checks if the file has one of extensions, ignoring case.
func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated relative path against a glob.
// "**" matches any number of segments. A pattern without a slash also
// matches the base name, so "*.tmp" excludes temp files at any depth.
func matchGlob(relPath, pattern string) bool {
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") && !strings.Contains(pattern, "**") {
		matched, err := path.Match(pattern, path.Base(relPath))
		return err == nil && matched
	}

	return matchSegments(strings.Split(pattern, "/"), strings.Split(relPath, "/"))
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(segments); i++ {
				if matchSegments(rest, segments[i:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}
		matched, err := path.Match(pattern[0], segments[0])
		if err != nil || !matched {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}

	return len(segments) == 0
}
