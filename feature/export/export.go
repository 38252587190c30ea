package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nuscenes-devkit/core/database"
	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/core/nusc/model"
	"nuscenes-devkit/core/table"
	"nuscenes-devkit/core/token"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultBatchSize is used when no positive batch size is given.
const DefaultBatchSize = 500

// ErrVerify is returned when the exported tables do not match the snapshot.
var ErrVerify = errors.New("export verification failed")

// TableCount is the number of rows written to one table.
type TableCount struct {
	Table string `json:"table" yaml:"table"`
	Rows  int64  `json:"rows" yaml:"rows"`
}

// Report summarises an export.
type Report struct {
	Version       string       `json:"version" yaml:"version"`
	Tables        []TableCount `json:"tables" yaml:"tables"`
	ExecutionTime string       `json:"execution_time" yaml:"execution_time"`
}

// Exporter writes denormalized snapshots into a SQL database.
type Exporter struct {
	db        *gorm.DB
	batchSize int
	logger    *zap.Logger
}

// New creates an exporter. A nil logger disables logging.
func New(db *gorm.DB, batchSize int, logger *zap.Logger) *Exporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{db: db, batchSize: batchSize, logger: logger}
}

// batch is the rows of one exported table.
type batch struct {
	table string
	model any
	rows  any
	count int
}

// Export replaces the exported tables with the contents of t and verifies
// the row counts once the transaction commits.
func (e *Exporter) Export(ctx context.Context, t *nusc.Tables) (*Report, error) {
	start := time.Now()
	version, _ := t.Identity()
	db := e.db.WithContext(ctx)

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := e.checkSchema(db); err != nil {
		return nil, err
	}

	batches := collect(t)
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, b := range batches {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(b.model).Error; err != nil {
				return fmt.Errorf("clear %s: %w", b.table, err)
			}
			if b.count == 0 {
				continue
			}
			if err := tx.CreateInBatches(b.rows, e.batchSize).Error; err != nil {
				return fmt.Errorf("insert %s: %w", b.table, err)
			}
			e.logger.Debug("Exported table",
				zap.String("table", b.table),
				zap.String("rows", humanize.Comma(int64(b.count))))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &Report{Version: version}
	for _, b := range batches {
		n, err := database.CountRows(db, b.table)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", b.table, err)
		}
		if n != int64(b.count) {
			return nil, fmt.Errorf("%w: %s has %d rows, expected %d", ErrVerify, b.table, n, b.count)
		}
		report.Tables = append(report.Tables, TableCount{Table: b.table, Rows: n})
	}
	report.ExecutionTime = time.Since(start).String()

	e.logger.Info("Export finished",
		zap.String("version", version),
		zap.Int("tables", len(report.Tables)),
		zap.String("duration", report.ExecutionTime))
	return report, nil
}

// checkSchema verifies that every model column exists after migration.
func (e *Exporter) checkSchema(db *gorm.DB) error {
	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return fmt.Errorf("parse model: %w", err)
		}
		missing, err := database.MissingColumns(db, stmt.Schema.Table, stmt.Schema.DBNames)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", stmt.Schema.Table, err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: %s is missing columns %v", ErrVerify, stmt.Schema.Table, missing)
		}
	}
	return nil
}

// collect converts every exported table, in migration order.
func collect(t *nusc.Tables) []batch {
	categories := unique(t.Category(), categoryRow)
	scenes := unique(t.Scene(), func(sc model.Scene) SceneRow {
		l, _ := t.Log().Get(sc.LogToken)
		return sceneRow(sc, l)
	})
	samples := unique(t.Sample(), sampleRow)
	data := unique(t.SampleData(), sampleDataRow)
	instances := unique(t.Instance(), func(ins model.Instance) InstanceRow {
		c, _ := t.Category().Get(ins.CategoryToken)
		return instanceRow(ins, c.Name)
	})
	annotations := unique(t.SampleAnnotation(), annotationRow)

	return []batch{
		{table: CategoryRow{}.TableName(), model: &CategoryRow{}, rows: &categories, count: len(categories)},
		{table: SceneRow{}.TableName(), model: &SceneRow{}, rows: &scenes, count: len(scenes)},
		{table: SampleRow{}.TableName(), model: &SampleRow{}, rows: &samples, count: len(samples)},
		{table: SampleDataRow{}.TableName(), model: &SampleDataRow{}, rows: &data, count: len(data)},
		{table: InstanceRow{}.TableName(), model: &InstanceRow{}, rows: &instances, count: len(instances)},
		{table: AnnotationRow{}.TableName(), model: &AnnotationRow{}, rows: &annotations, count: len(annotations)},
	}
}

// unique converts the rows of tbl, keeping one row per token. A later
// duplicate replaces the earlier row in place, matching lookup semantics.
func unique[T table.Record, R any](tbl *table.Table[T], conv func(T) R) []R {
	out := make([]R, 0, tbl.Len()-tbl.Duplicates())
	pos := make(map[token.Token]int, cap(out))
	for _, row := range tbl.All() {
		key := row.Key()
		if i, ok := pos[key]; ok {
			out[i] = conv(row)
			continue
		}
		pos[key] = len(out)
		out = append(out, conv(row))
	}
	return out
}
