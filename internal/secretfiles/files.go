// Package secretfiles resolves the secret file paths listed in a
// configuration section.
package secretfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/sealedconf/internal/configsource"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSection lists secret files, one path or glob per child:
//
//	"SecretFiles": ["./secrets.json", "/etc/app/*.secrets.json"]
const DefaultSection = "SecretFiles"

// Resolve returns the existing regular files named by the children of the
// section at key. Paths starting with "." are taken relative to workDir;
// glob patterns (including **) are expanded. Blank entries and paths that do
// not exist are skipped. The result keeps section order without duplicates.
func Resolve(root *configsource.Root, key, workDir string) ([]string, error) {
	var patterns []string
	for _, child := range root.Section(key).Children() {
		v, _ := child.Value()
		if v == nil || strings.TrimSpace(*v) == "" {
			continue
		}
		patterns = append(patterns, strings.TrimSpace(*v))
	}
	return ResolvePatterns(patterns, workDir)
}

// ResolvePatterns applies Resolve's rules to literal patterns.
func ResolvePatterns(patterns []string, workDir string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, workDir)
		if err != nil {
			return nil, err
		}
		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}

func resolvePattern(pattern, workDir string) ([]string, error) {
	path := pattern
	if strings.HasPrefix(pattern, ".") {
		path = filepath.Join(workDir, pattern)
	}

	if !strings.ContainsAny(pattern, "*?[{") {
		if isFile(path) {
			return []string{filepath.Clean(path)}, nil
		}
		return nil, nil
	}

	if !doublestar.ValidatePathPattern(path) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(path)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	var files []string
	for _, m := range matches {
		if isFile(m) {
			files = append(files, m)
		}
	}
	return files, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
