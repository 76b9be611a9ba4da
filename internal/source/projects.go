package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ProjectInfo describes one project directory.
type ProjectInfo struct {
	Name        string
	LastTouched time.Time
}

// IdleDays returns full days since the project was last touched.
func (p ProjectInfo) IdleDays(now time.Time) int {
	return int(now.Sub(p.LastTouched).Hours() / 24)
}

// Projects scans a directory of project checkouts and reports how
// recently each one was touched.
type Projects struct {
	root string
}

// NewProjects creates a project scanner rooted at dir.
func NewProjects(root string) *Projects {
	return &Projects{root: root}
}

// Scan walks each immediate subdirectory of the root and records the
// newest mtime found inside it. Hidden directories are skipped.
func (p *Projects) Scan() ([]ProjectInfo, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return nil, fmt.Errorf("read projects dir: %w", err)
	}

	var infos []ProjectInfo
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		touched := newestMtime(filepath.Join(p.root, entry.Name()))
		if touched.IsZero() {
			continue
		}
		infos = append(infos, ProjectInfo{Name: entry.Name(), LastTouched: touched})
	}
	return infos, nil
}

// newestMtime finds the most recent modification time under dir,
// ignoring VCS and dependency directories.
func newestMtime(dir string) time.Time {
	var newest time.Time
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() && (name == ".git" || name == "node_modules" || name == "vendor") {
			return filepath.SkipDir
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})
	return newest
}
