package tables

import (
	"context"
	"fmt"

	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/core/record"

	"go.uber.org/zap"
)

const (
	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 100
	// MaxLimit caps the page size.
	MaxLimit = 1000
)

// Snapshots provides the current dataset snapshot.
type Snapshots interface {
	Get(ctx context.Context, version, dataroot string) (*nusc.Tables, error)
}

// Service answers table queries against the shared snapshot.
type Service struct {
	snapshots Snapshots
	version   string
	dataroot  string
	logger    *zap.Logger
}

// NewService creates a new tables service.
func NewService(snapshots Snapshots, version, dataroot string, logger *zap.Logger) *Service {
	return &Service{
		snapshots: snapshots,
		version:   version,
		dataroot:  dataroot,
		logger:    logger,
	}
}

// Snapshot returns the current snapshot, building it on first use.
func (s *Service) Snapshot(ctx context.Context) (*nusc.Tables, error) {
	t, err := s.snapshots.Get(ctx, s.version, s.dataroot)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.version, err)
	}
	return t, nil
}

// List returns the statistics of every table.
func (s *Service) List(ctx context.Context) ([]nusc.TableStat, error) {
	t, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return t.Stats(), nil
}

// Get looks up one record.
func (s *Service) Get(ctx context.Context, table, token string) (record.Fields, error) {
	t, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return t.Get(table, token)
}

// Page is one slice of a table.
type Page struct {
	Table  string          `json:"table"`
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
	Step   int             `json:"step"`
	Rows   []record.Fields `json:"rows" swaggertype:"array,object"`
}

// Page returns up to limit rows starting at offset, taking every step-th row.
// A negative offset counts from the end of the table.
func (s *Service) Page(ctx context.Context, table string, offset, limit, step int) (*Page, error) {
	t, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	v, err := t.View(table)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	if step == 0 {
		step = 1
	}

	start := offset
	if start < 0 {
		start = max(0, start+v.Len())
	}
	rows, err := v.Slice(start, start+limit*max(step, 1), step)
	if err != nil {
		return nil, err
	}
	return &Page{
		Table:  table,
		Total:  v.Len(),
		Offset: start,
		Limit:  limit,
		Step:   step,
		Rows:   rows,
	}, nil
}
