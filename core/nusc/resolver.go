package nusc

import (
	"context"
	"time"

	"nuscenes-devkit/core/nusc/model"
	"nuscenes-devkit/core/parallel"
	"nuscenes-devkit/core/table"
	"nuscenes-devkit/core/token"

	"go.uber.org/zap"
)

type pass struct {
	name string
	run  func(ctx context.Context, r *raw, t *Tables, workers int) error
}

// passes run strictly in this order; each may read tables finalized by the
// ones before it.
var passes = []pass{
	{"index", indexTables},
	{"map_log", resolveMapLog},
	{"sensor", resolveSensors},
	{"taxonomy", resolveTaxonomy},
	{"sample", resolveSamples},
}

func resolve(ctx context.Context, r *raw, o options) (*Tables, error) {
	t := &Tables{}
	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		if err := p.run(ctx, r, t, o.workers); err != nil {
			return nil, err
		}
		elapsed := time.Since(start)
		o.observer.ObserveStage("resolve."+p.name, elapsed)
		o.logger.Debug("Resolver pass done", zap.String("pass", p.name), zap.Duration("elapsed", elapsed))
	}
	return t, nil
}

// indexTables builds the tables that carry no derived fields.
func indexTables(_ context.Context, r *raw, t *Tables, workers int) error {
	t.maps = table.New(r.maps, workers)
	t.sensor = table.New(r.sensors, workers)
	t.calibrated = table.New(r.calibrated, workers)
	t.scene = table.New(r.scenes, workers)
	t.egoPose = table.New(r.egoPoses, workers)
	t.instance = table.New(r.instances, workers)
	t.category = table.New(r.categories, workers)
	t.attribute = table.New(r.attributes, workers)
	if r.hasLidarSeg {
		t.lidarseg = table.New(r.lidarseg, workers)
	}
	if r.hasPanoptic {
		t.panoptic = table.New(r.panoptic, workers)
	}
	return nil
}

// resolveMapLog sets Log.MapToken from the map that lists the log. Map entries
// naming an unknown log are ignored here and reported by the integrity checks.
func resolveMapLog(_ context.Context, r *raw, t *Tables, workers int) error {
	owner := make(map[token.Token]token.Token, len(r.logs))
	for _, m := range t.maps.Rows() {
		for _, l := range m.LogTokens {
			owner[l] = m.Token
		}
	}

	rows := make([]model.Log, len(r.logs))
	for i, l := range r.logs {
		m, ok := owner[l.Token]
		if !ok {
			return &ReferenceError{Table: TableLog, Token: l.Token, Field: "map_token", Target: TableMap}
		}
		l.MapToken = m
		rows[i] = l
	}
	t.log = table.New(rows, workers)
	return nil
}

// resolveSensors sets SampleData modality and channel through its calibrated sensor.
func resolveSensors(ctx context.Context, r *raw, t *Tables, workers int) error {
	rows, err := parallel.Map(ctx, workers, r.sampleData, func(_ int, sd model.SampleData) (model.SampleData, error) {
		cal, ok := t.calibrated.Get(sd.CalibratedSensorToken)
		if !ok {
			return sd, &ReferenceError{Table: TableSampleData, Token: sd.Token, Field: "calibrated_sensor_token", Target: TableCalibratedSensor, Ref: sd.CalibratedSensorToken}
		}
		sen, ok := t.sensor.Get(cal.SensorToken)
		if !ok {
			return sd, &ReferenceError{Table: TableCalibratedSensor, Token: cal.Token, Field: "sensor_token", Target: TableSensor, Ref: cal.SensorToken}
		}
		sd.Modality = sen.Modality
		sd.Channel = sen.Channel
		return sd, nil
	})
	if err != nil {
		return err
	}
	t.sampleData = table.New(rows, workers)
	return nil
}

// resolveTaxonomy sets SampleAnnotation.CategoryName through its instance.
func resolveTaxonomy(ctx context.Context, r *raw, t *Tables, workers int) error {
	rows, err := parallel.Map(ctx, workers, r.annotations, func(_ int, ann model.SampleAnnotation) (model.SampleAnnotation, error) {
		ins, ok := t.instance.Get(ann.InstanceToken)
		if !ok {
			return ann, &ReferenceError{Table: TableSampleAnnotation, Token: ann.Token, Field: "instance_token", Target: TableInstance, Ref: ann.InstanceToken}
		}
		cat, ok := t.category.Get(ins.CategoryToken)
		if !ok {
			return ann, &ReferenceError{Table: TableInstance, Token: ins.Token, Field: "category_token", Target: TableCategory, Ref: ins.CategoryToken}
		}
		ann.CategoryName = cat.Name
		return ann, nil
	})
	if err != nil {
		return err
	}
	t.annotation = table.New(rows, workers)
	return nil
}

// resolveSamples fills the per-channel slots and annotation list of every sample.
// When several captures of one sample share a channel, the last one in
// sample_data order keeps the slot. Captures and annotations whose sample
// does not exist are not attached anywhere.
func resolveSamples(ctx context.Context, r *raw, t *Tables, workers int) error {
	data := make(map[token.Token]*model.ChannelTokens, len(r.samples))
	for _, sd := range t.sampleData.All() {
		slots, ok := data[sd.SampleToken]
		if !ok {
			slots = new(model.ChannelTokens)
			data[sd.SampleToken] = slots
		}
		slots[sd.Channel] = sd.Token
	}

	anns := make(map[token.Token][]token.Token, len(r.samples))
	for _, ann := range t.annotation.All() {
		anns[ann.SampleToken] = append(anns[ann.SampleToken], ann.Token)
	}

	rows, err := parallel.Map(ctx, workers, r.samples, func(_ int, s model.Sample) (model.Sample, error) {
		if slots, ok := data[s.Token]; ok {
			s.Data = *slots
		}
		s.Anns = anns[s.Token]
		if s.Anns == nil {
			s.Anns = []token.Token{}
		}
		return s, nil
	})
	if err != nil {
		return err
	}
	t.sample = table.New(rows, workers)
	return nil
}
