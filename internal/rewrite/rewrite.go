package rewrite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileChange records the replacements made in one file.
type FileChange struct {
	Path         string
	Replacements int
}

type Summary struct {
	FilesChanged      int
	TotalReplacements int
	Changes           []FileChange
}

type Runner struct {
	logger *zap.SugaredLogger
	dryRun bool
}

func NewRunner(logger *zap.SugaredLogger, dryRun bool) *Runner {
	return &Runner{logger: logger, dryRun: dryRun}
}

// Apply runs one rule over every matching file under root. Unreadable files
// are logged and skipped; a failed write aborts the run.
func (r *Runner) Apply(root string, rule Rule) (Summary, error) {
	var summary Summary

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !matchesExt(path, rule.Extensions) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warnw("skipping unreadable file", "file", path, "error", err)
			return nil
		}

		matches := rule.Pattern.FindAllIndex(content, -1)
		if len(matches) == 0 {
			return nil
		}

		if !r.dryRun {
			updated := rule.Pattern.ReplaceAll(content, []byte(rule.Replacement))
			if err := os.WriteFile(path, updated, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}

		summary.FilesChanged++
		summary.TotalReplacements += len(matches)
		summary.Changes = append(summary.Changes, FileChange{Path: path, Replacements: len(matches)})
		r.logger.Debugw("applied rule", "rule", rule.Name, "file", path, "replacements", len(matches))
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("walk %s: %w", root, err)
	}
	return summary, nil
}

func matchesExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
