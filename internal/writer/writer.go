package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Options configures a Writer explicitly; there is no ambient state.
type Options struct {
	// Backup copies the destination to <name>.backup.<epoch-millis> before
	// each write. Backups are never read back by the engine.
	Backup bool
	// Validate runs the advisory content checks after a successful write.
	Validate bool
}

// WriteResult reports one write operation. Errors holds hard I/O failures
// only; advisory validation findings go to Warnings and never fail a write.
type WriteResult struct {
	Success      bool
	FilePath     string
	BytesWritten int
	Errors       []string
	Warnings     []string
}

// Writer persists merged documents atomically: content goes to a sibling
// temporary file first and is moved into place with a single rename, so the
// destination is never observed partially written. On any failure the
// temporary file is removed and the original left untouched.
type Writer struct {
	opts Options
}

func New(opts Options) *Writer {
	return &Writer{opts: opts}
}

func (w *Writer) Write(path, content string) WriteResult {
	res := WriteResult{FilePath: path}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("failed to create directory %s: %v", dir, err))
		return res
	}

	if w.opts.Backup {
		if err := backupFile(path); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("backup failed: %v", err))
			return res
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("failed to create temporary file: %v", err))
		return res
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		res.Errors = append(res.Errors, fmt.Sprintf("failed to write temporary file: %v", err))
		return res
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		res.Errors = append(res.Errors, fmt.Sprintf("failed to close temporary file: %v", err))
		return res
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		res.Errors = append(res.Errors, fmt.Sprintf("failed to replace %s: %v", path, err))
		return res
	}

	res.Success = true
	res.BytesWritten = len(content)
	if w.opts.Validate {
		res.Warnings = CheckContent(content, dir)
	}
	return res
}

// backupFile snapshots the current destination beside the original. A
// missing destination needs no backup.
func backupFile(path string) error {
	src, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	backupPath := fmt.Sprintf("%s.backup.%d", path, time.Now().UnixMilli())
	return os.WriteFile(backupPath, src, 0644)
}
