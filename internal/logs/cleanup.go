package logs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rileyhilliard/tfui/internal/config"
	"github.com/rileyhilliard/tfui/internal/errors"
)

// sessionDir is a session directory with metadata for cleanup decisions.
type sessionDir struct {
	path    string
	modTime time.Time
	size    int64
}

// SessionInfo describes a session directory for display.
type SessionInfo struct {
	Path    string
	Name    string
	Project string
	ModTime time.Time
	Size    int64
}

// Cleanup removes old sessions based on the retention policy.
// Priority: MaxSizeMB > KeepDays > KeepRuns.
func Cleanup(cfg config.LogsConfig) error {
	baseDir := config.ExpandTilde(cfg.Dir)
	if baseDir == "" {
		return nil
	}
	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		return nil
	}

	if cfg.MaxSizeMB > 0 {
		if err := CleanBySize(baseDir, int64(cfg.MaxSizeMB)*1024*1024); err != nil {
			return err
		}
	}
	if cfg.KeepDays > 0 {
		if err := CleanByAge(baseDir, time.Duration(cfg.KeepDays)*24*time.Hour); err != nil {
			return err
		}
	}
	if cfg.KeepRuns > 0 {
		if err := CleanByRuns(baseDir, cfg.KeepRuns); err != nil {
			return err
		}
	}
	return nil
}

// CleanByRuns keeps the newest keep sessions for each project.
func CleanByRuns(baseDir string, keep int) error {
	if keep <= 0 {
		return nil
	}

	dirs, err := listSessions(baseDir)
	if err != nil {
		return err
	}

	byProject := make(map[string][]sessionDir)
	for _, d := range dirs {
		p := projectName(filepath.Base(d.path))
		byProject[p] = append(byProject[p], d)
	}

	for _, group := range byProject {
		if len(group) <= keep {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].modTime.After(group[j].modTime)
		})
		if err := removeAll(group[keep:]); err != nil {
			return err
		}
	}
	return nil
}

// CleanByAge deletes sessions older than maxAge.
func CleanByAge(baseDir string, maxAge time.Duration) error {
	if maxAge <= 0 {
		return nil
	}

	dirs, err := listSessions(baseDir)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	var old []sessionDir
	for _, d := range dirs {
		if d.modTime.Before(cutoff) {
			old = append(old, d)
		}
	}
	return removeAll(old)
}

// CleanBySize deletes the oldest sessions until the total is under maxBytes.
func CleanBySize(baseDir string, maxBytes int64) error {
	if maxBytes <= 0 {
		return nil
	}

	dirs, err := listSessions(baseDir)
	if err != nil {
		return err
	}

	var total int64
	for _, d := range dirs {
		total += d.size
	}

	sort.Slice(dirs, func(i, j int) bool {
		return dirs[i].modTime.Before(dirs[j].modTime)
	})

	var victims []sessionDir
	for _, d := range dirs {
		if total <= maxBytes {
			break
		}
		victims = append(victims, d)
		total -= d.size
	}
	return removeAll(victims)
}

// CleanAll removes every session directory.
func CleanAll(baseDir string) error {
	dirs, err := listSessions(config.ExpandTilde(baseDir))
	if err != nil {
		return err
	}
	return removeAll(dirs)
}

// ListSessions returns sessions newest first.
func ListSessions(baseDir string) ([]SessionInfo, error) {
	dirs, err := listSessions(config.ExpandTilde(baseDir))
	if err != nil {
		return nil, err
	}

	sort.Slice(dirs, func(i, j int) bool {
		return dirs[i].modTime.After(dirs[j].modTime)
	})

	result := make([]SessionInfo, len(dirs))
	for i, d := range dirs {
		name := filepath.Base(d.path)
		result[i] = SessionInfo{
			Path:    d.path,
			Name:    name,
			Project: projectName(name),
			ModTime: d.modTime,
			Size:    d.size,
		}
	}
	return result, nil
}

func removeAll(dirs []sessionDir) error {
	for _, d := range dirs {
		if err := os.RemoveAll(d.path); err != nil {
			return errors.WrapWithCode(err, errors.ErrExec,
				"Can't delete log directory "+d.path,
				"Check your permissions.")
		}
	}
	return nil
}

// listSessions returns all session directories in baseDir with metadata.
func listSessions(baseDir string) ([]sessionDir, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			"Can't read log directory "+baseDir,
			"Check your permissions.")
	}

	var dirs []sessionDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(baseDir, entry.Name())
		dirs = append(dirs, sessionDir{
			path:    path,
			modTime: info.ModTime(),
			size:    dirSize(path),
		})
	}
	return dirs, nil
}

func dirSize(path string) int64 {
	var size int64
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		size += info.Size()
		return nil
	})
	return size
}

// projectName strips the trailing timestamp from a session directory name.
// Format: <project>-<YYYYMMDD>-<HHMMSS> (e.g., "network-20240115-143022").
func projectName(dirName string) string {
	parts := strings.Split(dirName, "-")
	if len(parts) < 3 {
		return dirName
	}
	date, clock := parts[len(parts)-2], parts[len(parts)-1]
	if len(date) == 8 && len(clock) == 6 && isDigits(date) && isDigits(clock) {
		return strings.Join(parts[:len(parts)-2], "-")
	}
	return dirName
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
