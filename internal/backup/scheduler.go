// Package backup writes periodic JSON snapshots of the tracker data.
package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"fittrack/internal/domain"
	"fittrack/internal/metrics"
)

// jobTimeout bounds a single backup run.
const jobTimeout = time.Minute

// Exporter writes the full data set as JSON.
type Exporter interface {
	ExportJSON(ctx context.Context, w io.Writer) error
}

// FileName is the snapshot name for day.
func FileName(day domain.Date) string {
	return fmt.Sprintf("fitness-backup-%s.json", day)
}

// Scheduler runs backups on a cron schedule.
type Scheduler struct {
	exporter Exporter
	dir      string
	today    func() domain.Date
	metrics  *metrics.Manager
	cron     *cron.Cron
}

// NewScheduler creates a Scheduler writing into dir. today names the files;
// m may be nil.
func NewScheduler(exporter Exporter, dir string, today func() domain.Date, m *metrics.Manager) *Scheduler {
	return &Scheduler{
		exporter: exporter,
		dir:      dir,
		today:    today,
		metrics:  m,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start registers the backup job with a six-field (seconds first) cron spec
// and starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			slog.Error("backup failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule backup %q: %w", spec, err)
	}
	s.cron.Start()
	slog.Info("backup scheduler started", "schedule", spec, "dir", s.dir)
	return nil
}

// Stop stops the scheduler and waits for a running backup to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce writes today's snapshot and returns its path. The file is written
// under a temporary name and renamed, so a reader never sees a partial file.
func (s *Scheduler) RunOnce(ctx context.Context) (path string, err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.CounterBackups.WithLabelValues(metrics.Result(err)).Inc()
		}
	}()

	path = filepath.Join(s.dir, FileName(s.today()))
	tmp, err := os.CreateTemp(s.dir, ".fitness-backup-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if err := s.exporter.ExportJSON(ctx, tmp); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	slog.Info("backup written", "path", path)
	return path, nil
}
