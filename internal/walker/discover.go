package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Discoverer finds candidate .rs files under one or more roots,
// honoring exclude patterns. Grounded on the teacher's FileWalker.Walk /
// walkPath, trimmed to this project's single-language scope.
type Discoverer struct {
	Exclude []string
	Log     *logrus.Logger
}

func NewDiscoverer(exclude []string, log *logrus.Logger) *Discoverer {
	return &Discoverer{Exclude: exclude, Log: log}
}

// Discover walks each root (a file or a directory) and returns every
// matched .rs file path, deduplicated, in the order filepath.WalkDir
// visits them (not yet sorted — report.Build imposes the final
// deterministic order). Per 4.6, "given one file path, the set is
// {that path}": a root that is itself a regular file is included
// unconditionally, without the .rs-suffix/exclude filtering that only
// applies when recursing a directory.
func (d *Discoverer) Discover(roots []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	visitedDirs := map[string]struct{}{}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if _, dup := seen[root]; !dup {
				seen[root] = struct{}{}
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				if d.Log != nil {
					d.Log.WithError(err).WithField("path", path).Warn("skipping path")
				}
				return nil
			}

			if entry.IsDir() {
				real, rerr := filepath.EvalSymlinks(path)
				if rerr == nil {
					if _, dup := visitedDirs[real]; dup {
						return filepath.SkipDir
					}
					visitedDirs[real] = struct{}{}
				}
				if d.shouldExclude(path) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.shouldExclude(path) {
				return nil
			}
			if !strings.HasSuffix(path, ".rs") {
				return nil
			}
			if _, dup := seen[path]; dup {
				return nil
			}
			seen[path] = struct{}{}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func (d *Discoverer) shouldExclude(path string) bool {
	slash := filepath.ToSlash(path)
	for _, pattern := range d.Exclude {
		if pattern == "" {
			continue
		}
		if strings.Contains(slash, strings.TrimSuffix(pattern, "/")) {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}
