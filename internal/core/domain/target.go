package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// NormalizeTarget rebases an absolute target path on cwd.
// Relative paths pass through unchanged.
func NormalizeTarget(cwd, target string) (string, error) {
	if !filepath.IsAbs(target) {
		return target, nil
	}
	rel, err := filepath.Rel(cwd, target)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to rebase target on working directory"), "target", target)
	}
	return rel, nil
}
