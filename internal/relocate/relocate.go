// Package relocate moves finished feed files from the output directory
// into a destination directory, typically a web server's document root.
package relocate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

type Config struct {
	SourceDir         string
	DestinationFolder string
	Enabled           bool
}

type Mover struct {
	sourceDir string
	destDir   string
	enabled   bool
	logger    *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Mover {
	return &Mover{
		sourceDir: cfg.SourceDir,
		destDir:   cfg.DestinationFolder,
		enabled:   cfg.Enabled,
		logger:    logger,
	}
}

// Move relocates the named feed file and returns its new path. When
// relocation is disabled it returns an empty path and no error.
func (m *Mover) Move(name string) (string, error) {
	if !m.enabled {
		m.logger.Debug("moving feed files is disabled")
		return "", nil
	}
	if m.destDir == "" {
		return "", fmt.Errorf("destination folder is not set")
	}

	info, err := os.Stat(m.destDir)
	if err != nil {
		return "", fmt.Errorf("destination folder: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("destination folder is not a directory: %s", m.destDir)
	}

	src := filepath.Join(m.sourceDir, name)
	dst := filepath.Join(m.destDir, name)

	if err := os.Rename(src, dst); err != nil {
		// Rename fails across filesystems; fall back to copy + remove.
		if err := copyFile(src, dst); err != nil {
			return "", fmt.Errorf("move %s: %w", name, err)
		}
		if err := os.Remove(src); err != nil {
			return "", fmt.Errorf("remove source %s: %w", name, err)
		}
	}

	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
