package nusc

import (
	"context"
	"fmt"
	"time"

	"nuscenes-devkit/core/nusc/model"
	"nuscenes-devkit/core/record"
	"nuscenes-devkit/core/table"
	"nuscenes-devkit/core/token"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Tables is an immutable, fully resolved snapshot of one dataset version.
// It is safe for concurrent use.
type Tables struct {
	version  string
	dataroot string
	opts     []Option

	log        *table.Table[model.Log]
	maps       *table.Table[model.Map]
	sensor     *table.Table[model.Sensor]
	calibrated *table.Table[model.CalibratedSensor]
	scene      *table.Table[model.Scene]
	sample     *table.Table[model.Sample]
	sampleData *table.Table[model.SampleData]
	egoPose    *table.Table[model.EgoPose]
	instance   *table.Table[model.Instance]
	annotation *table.Table[model.SampleAnnotation]
	category   *table.Table[model.Category]
	attribute  *table.Table[model.Attribute]
	lidarseg   *table.Table[model.LidarSeg]
	panoptic   *table.Table[model.Panoptic]

	entries  map[string]entry
	observer Observer
}

// Open loads and resolves the dataset at <dataroot>/<version>. A dataroot of
// the form s3://bucket/prefix is read through the client given with WithStorage.
func Open(ctx context.Context, version, dataroot string, opts ...Option) (*Tables, error) {
	o := newOptions(opts)
	log := o.logger.With(zap.String("version", version), zap.String("dataroot", dataroot))

	src, err := NewSource(dataroot, version, o.client)
	if err != nil {
		return nil, err
	}
	if err := src.Check(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	r, err := load(ctx, src, o)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	o.observer.ObserveStage("load", time.Since(start))
	log.Debug("Done loading", zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	t, err := resolve(ctx, r, o)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", src, err)
	}
	o.observer.ObserveStage("resolve", time.Since(start))
	log.Debug("Done resolving", zap.Duration("elapsed", time.Since(start)))

	t.version = version
	t.dataroot = dataroot
	t.opts = opts
	t.observer = o.observer
	t.entries = t.buildEntries()

	for _, st := range t.Stats() {
		if !st.Available {
			continue
		}
		o.observer.ObserveTable(st.Name, st.Rows)
		if st.Duplicates == 0 {
			continue
		}
		if o.strict {
			return nil, fmt.Errorf("%w: table %s has %d duplicate tokens", ErrDuplicateToken, st.Name, st.Duplicates)
		}
		log.Warn("Duplicate tokens, last row wins",
			zap.String("table", st.Name),
			zap.String("duplicates", humanize.Comma(int64(st.Duplicates))))
	}
	return t, nil
}

// Identity returns the only persisted state of a snapshot.
func (t *Tables) Identity() (version, dataroot string) {
	return t.version, t.dataroot
}

// Reopen builds an equivalent snapshot from the identity and options of t.
func (t *Tables) Reopen(ctx context.Context) (*Tables, error) {
	return Open(ctx, t.version, t.dataroot, t.opts...)
}

func (t *Tables) Log() *table.Table[model.Log]                           { return t.log }
func (t *Tables) Map() *table.Table[model.Map]                           { return t.maps }
func (t *Tables) Sensor() *table.Table[model.Sensor]                     { return t.sensor }
func (t *Tables) CalibratedSensor() *table.Table[model.CalibratedSensor] { return t.calibrated }
func (t *Tables) Scene() *table.Table[model.Scene]                       { return t.scene }
func (t *Tables) Sample() *table.Table[model.Sample]                     { return t.sample }
func (t *Tables) SampleData() *table.Table[model.SampleData]             { return t.sampleData }
func (t *Tables) EgoPose() *table.Table[model.EgoPose]                   { return t.egoPose }
func (t *Tables) Instance() *table.Table[model.Instance]                 { return t.instance }
func (t *Tables) SampleAnnotation() *table.Table[model.SampleAnnotation] { return t.annotation }
func (t *Tables) Category() *table.Table[model.Category]                 { return t.category }
func (t *Tables) Attribute() *table.Table[model.Attribute]               { return t.attribute }

// LidarSeg returns the lidarseg table, or false when the dataset has none.
func (t *Tables) LidarSeg() (*table.Table[model.LidarSeg], bool) {
	return t.lidarseg, t.lidarseg != nil
}

// Panoptic returns the panoptic table, or false when the dataset has none.
func (t *Tables) Panoptic() (*table.Table[model.Panoptic], bool) {
	return t.panoptic, t.panoptic != nil
}

// Available reports whether name is a known table with a loaded source.
func (t *Tables) Available(name string) bool {
	e, ok := t.entries[name]
	return ok && e != nil
}

// Get looks up a record by table name and token text.
func (t *Tables) Get(name, tok string) (record.Fields, error) {
	e, err := t.entry(name)
	if err != nil {
		return nil, err
	}
	key, err := token.Parse(tok)
	if err != nil {
		t.observer.ObserveLookup(name, OutcomeMalformed)
		return nil, err
	}
	fields, ok := e.lookup(key)
	if !ok {
		t.observer.ObserveLookup(name, OutcomeMiss)
		return nil, fmt.Errorf("%w: %s %s", ErrRecordNotFound, name, key)
	}
	t.observer.ObserveLookup(name, OutcomeHit)
	return fields, nil
}

// View returns a sequence view over a table in source order.
func (t *Tables) View(name string) (View, error) {
	e, err := t.entry(name)
	if err != nil {
		return View{}, err
	}
	return View{name: name, e: e}, nil
}

func (t *Tables) entry(name string) (entry, error) {
	e, ok := t.entries[name]
	if !ok {
		t.observer.ObserveLookup(name, OutcomeUnknown)
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	if e == nil {
		t.observer.ObserveLookup(name, OutcomeUnavailable)
		return nil, fmt.Errorf("%w: %s was not loaded because %s is absent", ErrTableUnavailable, name, SourceFile(name))
	}
	return e, nil
}

// TableStat summarizes one table of a snapshot.
type TableStat struct {
	Name       string `json:"name" yaml:"name"`
	Rows       int    `json:"rows" yaml:"rows"`
	Available  bool   `json:"available" yaml:"available"`
	Duplicates int    `json:"duplicates" yaml:"duplicates"`
}

// Stats returns row, availability and duplicate counts in canonical table order.
func (t *Tables) Stats() []TableStat {
	entries := t.entries
	if entries == nil {
		entries = t.buildEntries()
	}
	out := make([]TableStat, 0, len(tableNames))
	for _, name := range tableNames {
		st := TableStat{Name: name}
		if e := entries[name]; e != nil {
			st.Available = true
			st.Rows = e.len()
			st.Duplicates = e.duplicates()
		}
		out = append(out, st)
	}
	return out
}

// buildEntries maps every table name to its entry; unavailable optional tables map to nil.
func (t *Tables) buildEntries() map[string]entry {
	m := map[string]entry{
		TableLog:              tableEntry[model.Log]{t.log},
		TableMap:              tableEntry[model.Map]{t.maps},
		TableSensor:           tableEntry[model.Sensor]{t.sensor},
		TableCalibratedSensor: tableEntry[model.CalibratedSensor]{t.calibrated},
		TableScene:            tableEntry[model.Scene]{t.scene},
		TableSample:           tableEntry[model.Sample]{t.sample},
		TableSampleData:       tableEntry[model.SampleData]{t.sampleData},
		TableEgoPose:          tableEntry[model.EgoPose]{t.egoPose},
		TableInstance:         tableEntry[model.Instance]{t.instance},
		TableSampleAnnotation: tableEntry[model.SampleAnnotation]{t.annotation},
		TableCategory:         tableEntry[model.Category]{t.category},
		TableAttribute:        tableEntry[model.Attribute]{t.attribute},
		TableLidarSeg:         nil,
		TablePanoptic:         nil,
	}
	if t.lidarseg != nil {
		m[TableLidarSeg] = tableEntry[model.LidarSeg]{t.lidarseg}
	}
	if t.panoptic != nil {
		m[TablePanoptic] = tableEntry[model.Panoptic]{t.panoptic}
	}
	return m
}
