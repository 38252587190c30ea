package nusc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nuscenes-devkit/core/nusc/model"
	"nuscenes-devkit/core/parallel"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Table names, in canonical order.
const (
	TableLog              = "log"
	TableMap              = "map"
	TableSensor           = "sensor"
	TableCalibratedSensor = "calibrated_sensor"
	TableScene            = "scene"
	TableSample           = "sample"
	TableSampleData       = "sample_data"
	TableEgoPose          = "ego_pose"
	TableInstance         = "instance"
	TableSampleAnnotation = "sample_annotation"
	TableCategory         = "category"
	TableAttribute        = "attribute"
	TableLidarSeg         = "lidarseg"
	TablePanoptic         = "panoptic"
)

var tableNames = []string{
	TableLog, TableMap, TableSensor, TableCalibratedSensor,
	TableScene, TableSample, TableSampleData, TableEgoPose,
	TableInstance, TableSampleAnnotation, TableCategory, TableAttribute,
	TableLidarSeg, TablePanoptic,
}

// TableNames returns every table name in canonical order.
func TableNames() []string {
	return append([]string(nil), tableNames...)
}

// IsOptional reports whether a table may be absent from a dataset.
func IsOptional(name string) bool {
	return name == TableLidarSeg || name == TablePanoptic
}

// SourceFile returns the file name a table is read from.
func SourceFile(name string) string {
	return name + ".json"
}

// raw holds every decoded table before resolution.
type raw struct {
	logs        []model.Log
	maps        []model.Map
	sensors     []model.Sensor
	calibrated  []model.CalibratedSensor
	scenes      []model.Scene
	samples     []model.Sample
	sampleData  []model.SampleData
	egoPoses    []model.EgoPose
	instances   []model.Instance
	annotations []model.SampleAnnotation
	categories  []model.Category
	attributes  []model.Attribute
	lidarseg    []model.LidarSeg
	panoptic    []model.Panoptic

	hasLidarSeg bool
	hasPanoptic bool
}

func (r *raw) rows(name string) int {
	switch name {
	case TableLog:
		return len(r.logs)
	case TableMap:
		return len(r.maps)
	case TableSensor:
		return len(r.sensors)
	case TableCalibratedSensor:
		return len(r.calibrated)
	case TableScene:
		return len(r.scenes)
	case TableSample:
		return len(r.samples)
	case TableSampleData:
		return len(r.sampleData)
	case TableEgoPose:
		return len(r.egoPoses)
	case TableInstance:
		return len(r.instances)
	case TableSampleAnnotation:
		return len(r.annotations)
	case TableCategory:
		return len(r.categories)
	case TableAttribute:
		return len(r.attributes)
	case TableLidarSeg:
		return len(r.lidarseg)
	case TablePanoptic:
		return len(r.panoptic)
	}
	return 0
}

// load decodes all table files concurrently. The first failure cancels the
// remaining decodes and is returned.
func load(ctx context.Context, src Source, o options) (*raw, error) {
	r := &raw{}
	err := parallel.Run(ctx, o.workers,
		decode(src, TableLog, &r.logs, nil),
		decode(src, TableMap, &r.maps, nil),
		decode(src, TableSensor, &r.sensors, nil),
		decode(src, TableCalibratedSensor, &r.calibrated, nil),
		decode(src, TableScene, &r.scenes, nil),
		decode(src, TableSample, &r.samples, nil),
		decode(src, TableSampleData, &r.sampleData, nil),
		decode(src, TableEgoPose, &r.egoPoses, nil),
		decode(src, TableInstance, &r.instances, nil),
		decode(src, TableSampleAnnotation, &r.annotations, nil),
		decode(src, TableCategory, &r.categories, nil),
		decode(src, TableAttribute, &r.attributes, nil),
		decode(src, TableLidarSeg, &r.lidarseg, &r.hasLidarSeg),
		decode(src, TablePanoptic, &r.panoptic, &r.hasPanoptic),
	)
	if err != nil {
		return nil, err
	}

	for _, name := range tableNames {
		if !r.available(name) {
			o.logger.Debug("Optional table not present", zap.String("table", name))
			continue
		}
		o.logger.Debug("Loaded table",
			zap.String("table", name),
			zap.String("rows", humanize.Comma(int64(r.rows(name)))))
	}
	return r, nil
}

// decode returns a task that reads one table file into dst. A nil present
// marks the table as required; otherwise an absent file is skipped and
// present stays false.
func decode[T any](src Source, name string, dst *[]T, present *bool) parallel.Task {
	file := SourceFile(name)
	return func(ctx context.Context) error {
		rc, err := src.Open(ctx, file)
		if err != nil {
			if present != nil && errors.Is(err, ErrSourceNotFound) {
				return nil
			}
			return err
		}
		defer rc.Close()

		var rows []T
		if err := json.NewDecoder(rc).Decode(&rows); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return &SourceError{Source: file, Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
		}
		if rows == nil {
			rows = []T{}
		}
		*dst = rows
		if present != nil {
			*present = true
		}
		return nil
	}
}

func (r *raw) available(name string) bool {
	switch name {
	case TableLidarSeg:
		return r.hasLidarSeg
	case TablePanoptic:
		return r.hasPanoptic
	}
	return true
}
