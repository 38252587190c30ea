package integrity

import (
	"context"
	"fmt"
	"time"

	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/feature/integrity/checks"
	"nuscenes-devkit/feature/tables"

	"go.uber.org/zap"
)

// Report is the combined outcome of every integrity check.
type Report struct {
	Version       string          `json:"version" yaml:"version"`
	Dataroot      string          `json:"dataroot" yaml:"dataroot"`
	Status        string          `json:"status" yaml:"status"`
	Issues        int             `json:"issues" yaml:"issues"`
	Checks        []checks.Result `json:"checks" yaml:"checks"`
	ExecutionTime string          `json:"execution_time" yaml:"execution_time"`
}

// Check runs every check against t.
func Check(t *nusc.Tables) *Report {
	start := time.Now()
	version, dataroot := t.Identity()
	report := &Report{
		Version:  version,
		Dataroot: dataroot,
		Status:   checks.StatusOK,
		Checks:   checks.Run(t),
	}
	for _, r := range report.Checks {
		report.Issues += r.Count
	}
	if report.Issues > 0 {
		report.Status = checks.StatusFailed
	}
	report.ExecutionTime = time.Since(start).String()
	return report
}

// Service runs integrity checks against the shared snapshot.
type Service struct {
	snapshots tables.Snapshots
	version   string
	dataroot  string
	logger    *zap.Logger
}

// NewService creates a new integrity service.
func NewService(snapshots tables.Snapshots, version, dataroot string, logger *zap.Logger) *Service {
	return &Service{
		snapshots: snapshots,
		version:   version,
		dataroot:  dataroot,
		logger:    logger,
	}
}

// Run checks the current snapshot.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	t, err := s.snapshots.Get(ctx, s.version, s.dataroot)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.version, err)
	}
	report := Check(t)
	if report.Issues > 0 {
		s.logger.Warn("Integrity issues found",
			zap.String("version", report.Version),
			zap.Int("issues", report.Issues))
	}
	return report, nil
}
