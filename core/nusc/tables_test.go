package nusc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nuscenes-devkit/core/nusc/model"
	"nuscenes-devkit/core/nusc/nusctest"
	"nuscenes-devkit/core/record"
	"nuscenes-devkit/core/table"
	"nuscenes-devkit/core/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T, d *nusctest.Dataset, opts ...Option) (*Tables, error) {
	t.Helper()
	root := d.Write(t)
	return Open(context.Background(), nusctest.Version, root, append([]Option{WithWorkers(4)}, opts...)...)
}

func mustOpen(t *testing.T, d *nusctest.Dataset, opts ...Option) *Tables {
	t.Helper()
	tables, err := openFixture(t, d, opts...)
	require.NoError(t, err)
	return tables
}

func TestOpen_Lookup(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	tables := mustOpen(t, d)

	for _, s := range d.Scenes {
		fields, err := tables.Get(TableScene, s.Token.String())
		require.NoError(t, err)
		tok, _ := fields.Get("token")
		assert.Equal(t, s.Token.String(), tok)
		name, _ := fields.Get("name")
		assert.Equal(t, s.Name, name)
	}

	_, err := tables.Get(TableScene, token.New().String())
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestOpen_MapLog(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 3})
	tables := mustOpen(t, d)

	for _, m := range d.Maps {
		for _, lt := range m.LogTokens {
			l, ok := tables.Log().Get(lt)
			require.True(t, ok)
			assert.Equal(t, m.Token, l.MapToken)
		}
	}
}

func TestOpen_SampleDataSensor(t *testing.T) {
	d := nusctest.New(nusctest.Options{Channels: model.Channels()})
	tables := mustOpen(t, d)

	for _, sd := range tables.SampleData().Rows() {
		cal, ok := tables.CalibratedSensor().Get(sd.CalibratedSensorToken)
		require.True(t, ok)
		sen, ok := tables.Sensor().Get(cal.SensorToken)
		require.True(t, ok)
		assert.Equal(t, sen.Modality, sd.Modality)
		assert.Equal(t, sen.Channel, sd.Channel)
	}
}

func TestOpen_AnnotationCategory(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	tables := mustOpen(t, d)

	assert.Equal(t, len(d.Annotations), tables.SampleAnnotation().Len())
	for _, ann := range tables.SampleAnnotation().Rows() {
		ins, _ := tables.Instance().Get(ann.InstanceToken)
		cat, _ := tables.Category().Get(ins.CategoryToken)
		assert.Equal(t, cat.Name, ann.CategoryName)
	}
}

func TestOpen_SampleAggregation(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	tables := mustOpen(t, d)

	channelOf := make(map[token.Token]model.Channel)
	for _, sd := range tables.SampleData().Rows() {
		channelOf[sd.Token] = sd.Channel
	}

	for _, s := range tables.Sample().Rows() {
		want := make(map[model.Channel]token.Token)
		for _, sd := range d.SampleData {
			if sd.SampleToken == s.Token {
				want[channelOf[sd.Token]] = sd.Token
			}
		}
		for _, ch := range model.Channels() {
			got, filled := s.Data.Get(ch)
			if tok, ok := want[ch]; ok {
				assert.True(t, filled)
				assert.Equal(t, tok, got)
			} else {
				assert.False(t, filled, "channel %s", ch)
			}
		}

		var anns []token.Token
		for _, a := range d.Annotations {
			if a.SampleToken == s.Token {
				anns = append(anns, a.Token)
			}
		}
		assert.ElementsMatch(t, anns, s.Anns)
	}
}

func TestOpen_SampleLastCaptureWins(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 1, Channels: []model.Channel{model.CamFront}})
	extra := d.SampleData[0]
	extra.Token = token.New()
	extra.Prev, extra.Next = token.None, token.None
	d.SampleData = append(d.SampleData, extra)

	tables := mustOpen(t, d)
	s := tables.Sample().At(0)
	got, ok := s.Data.Get(model.CamFront)
	require.True(t, ok)
	assert.Equal(t, extra.Token, got)
}

func TestOpen_EmptySlotsRenderEmpty(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 1})
	tables := mustOpen(t, d)

	fields, err := tables.Get(TableSample, d.Samples[0].Token.String())
	require.NoError(t, err)
	v, ok := fields.Get("data")
	require.True(t, ok)
	data := v.(record.Fields)
	assert.Len(t, data, model.NumChannels)
	back, _ := data.Get("CAM_BACK")
	assert.Equal(t, "", back)
	front, _ := data.Get("CAM_FRONT")
	assert.NotEqual(t, "", front)
}

func TestOpen_MissingRequiredSource(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	d.Omit["sample"] = true

	_, err := openFixture(t, d)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "sample.json", srcErr.Source)
}

func TestOpen_MissingOptionalSource(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	d.LidarSeg = nil

	tables := mustOpen(t, d)
	assert.False(t, tables.Available(TableLidarSeg))
	assert.True(t, tables.Available(TablePanoptic))

	_, ok := tables.LidarSeg()
	assert.False(t, ok)

	_, err := tables.Get(TableLidarSeg, token.New().String())
	assert.ErrorIs(t, err, ErrTableUnavailable)
	_, err = tables.View(TableLidarSeg)
	assert.ErrorIs(t, err, ErrTableUnavailable)

	for _, st := range tables.Stats() {
		if st.Name == TableLidarSeg {
			assert.False(t, st.Available)
			assert.Zero(t, st.Rows)
		}
	}
}

func TestOpen_DatasetNotFound(t *testing.T) {
	_, err := Open(context.Background(), "v1.0-missing", t.TempDir())
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestOpen_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		raw    string
		source string
	}{
		{"invalid json", TableScene, `{"not": "a list"`, "scene.json"},
		{"short token", TableAttribute, `[{"token":"abc","name":"x","description":""}]`, "attribute.json"},
		{"unknown channel", TableSensor, `[{"token":"` + token.New().String() + `","channel":"CAM_ROOF","modality":"camera"}]`, "sensor.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := nusctest.New(nusctest.Options{})
			d.Raw[tt.table] = tt.raw

			_, err := openFixture(t, d)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)

			var srcErr *SourceError
			require.ErrorAs(t, err, &srcErr)
			assert.Equal(t, tt.source, srcErr.Source)
		})
	}
}

func TestOpen_UnresolvedReference(t *testing.T) {
	t.Run("log without map", func(t *testing.T) {
		d := nusctest.New(nusctest.Options{})
		orphan := d.Maps[0].LogTokens[0]
		d.Maps[0].LogTokens = d.Maps[0].LogTokens[1:]

		_, err := openFixture(t, d)
		assert.ErrorIs(t, err, ErrUnresolvedReference)

		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, TableLog, refErr.Table)
		assert.Equal(t, orphan, refErr.Token)
		assert.Equal(t, TableMap, refErr.Target)
	})

	t.Run("unknown calibrated sensor", func(t *testing.T) {
		d := nusctest.New(nusctest.Options{})
		missing := token.New()
		d.SampleData[1].CalibratedSensorToken = missing

		_, err := openFixture(t, d)
		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, TableSampleData, refErr.Table)
		assert.Equal(t, "calibrated_sensor_token", refErr.Field)
		assert.Equal(t, missing, refErr.Ref)
	})

	t.Run("unknown category", func(t *testing.T) {
		d := nusctest.New(nusctest.Options{})
		d.Instances[0].CategoryToken = token.New()

		_, err := openFixture(t, d)
		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, TableInstance, refErr.Table)
		assert.Equal(t, TableCategory, refErr.Target)
	})
}

func TestOpen_Duplicates(t *testing.T) {
	newDataset := func() (*nusctest.Dataset, model.Attribute) {
		d := nusctest.New(nusctest.Options{})
		dup := d.Attributes[0]
		dup.Name = "vehicle.parked"
		d.Attributes = append(d.Attributes, dup)
		return d, dup
	}

	t.Run("last write wins", func(t *testing.T) {
		d, dup := newDataset()
		tables := mustOpen(t, d)

		got, ok := tables.Attribute().Get(dup.Token)
		require.True(t, ok)
		assert.Equal(t, "vehicle.parked", got.Name)
		assert.Equal(t, 3, tables.Attribute().Len())

		for _, st := range tables.Stats() {
			if st.Name == TableAttribute {
				assert.Equal(t, 1, st.Duplicates)
			}
		}
	})

	t.Run("strict", func(t *testing.T) {
		d, _ := newDataset()
		_, err := openFixture(t, d, WithStrictDuplicates(true))
		assert.ErrorIs(t, err, ErrDuplicateToken)
	})
}

func TestOpen_Canceled(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	root := d.Write(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Open(ctx, nusctest.Version, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGet_Errors(t *testing.T) {
	tables := mustOpen(t, nusctest.New(nusctest.Options{}))

	tests := []struct {
		name  string
		table string
		token string
		want  error
	}{
		{"unknown table", "weather", token.New().String(), ErrUnknownTable},
		{"short token", TableSample, "abc", ErrMalformed},
		{"long token", TableSample, token.New().String() + "00", ErrMalformed},
		{"non hex token", TableSample, "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", ErrMalformed},
		{"empty token", TableSample, "", ErrMalformed},
		{"zero token", TableCategory, "00000000000000000000000000000000", ErrRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tables.Get(tt.table, tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGet_UppercaseToken(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	tables := mustOpen(t, d)

	upper := []byte(d.Scenes[0].Token.String())
	for i, c := range upper {
		if c >= 'a' && c <= 'f' {
			upper[i] = c - 'a' + 'A'
		}
	}
	_, err := tables.Get(TableScene, string(upper))
	assert.NoError(t, err)
}

func TestView(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 2, SamplesPerScene: 4})
	tables := mustOpen(t, d)

	v, err := tables.View(TableSample)
	require.NoError(t, err)
	assert.Equal(t, TableSample, v.Name())
	assert.Equal(t, len(d.Samples), v.Len())

	first, err := v.At(0)
	require.NoError(t, err)
	tok, _ := first.Get("token")
	assert.Equal(t, d.Samples[0].Token.String(), tok)

	_, err = v.At(-1)
	assert.ErrorIs(t, err, table.ErrIndexOutOfRange)
	_, err = v.At(v.Len())
	assert.ErrorIs(t, err, table.ErrIndexOutOfRange)

	rows, err := v.Slice(1, 7, 2)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	tok, _ = rows[1].Get("token")
	assert.Equal(t, d.Samples[3].Token.String(), tok)

	tail, err := v.Slice(-2, v.Len(), 1)
	require.NoError(t, err)
	assert.Len(t, tail, 2)

	_, err = v.Slice(0, 2, 0)
	assert.ErrorIs(t, err, table.ErrInvalidStep)

	for pass := range 2 {
		n := 0
		for i, f := range v.All() {
			tok, _ := f.Get("token")
			assert.Equal(t, d.Samples[i].Token.String(), tok, "pass %d", pass)
			n++
		}
		assert.Equal(t, v.Len(), n)
	}

	_, err = tables.View("weather")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestStats(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	tables := mustOpen(t, d)

	stats := tables.Stats()
	require.Len(t, stats, len(TableNames()))
	for i, st := range stats {
		assert.Equal(t, TableNames()[i], st.Name)
		assert.True(t, st.Available)
	}
	assert.Equal(t, len(d.SampleData), stats[6].Rows)
}

func TestIdentityAndReopen(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	root := d.Write(t)
	tables, err := Open(context.Background(), nusctest.Version, root)
	require.NoError(t, err)

	version, dataroot := tables.Identity()
	assert.Equal(t, nusctest.Version, version)
	assert.Equal(t, root, dataroot)

	again, err := tables.Reopen(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, tables, again)
	assert.Equal(t, tables.Stats(), again.Stats())

	want, err := tables.Get(TableSample, d.Samples[1].Token.String())
	require.NoError(t, err)
	got, err := again.Get(TableSample, d.Samples[1].Token.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

type recordingObserver struct {
	mu      sync.Mutex
	stages  map[string]int
	tables  map[string]int
	lookups map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{stages: map[string]int{}, tables: map[string]int{}, lookups: map[string]int{}}
}

func (o *recordingObserver) ObserveStage(stage string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stages[stage]++
}

func (o *recordingObserver) ObserveTable(table string, rows int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tables[table] = rows
}

func (o *recordingObserver) ObserveLookup(table, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lookups[table+"/"+outcome]++
}

func (o *recordingObserver) stage(name string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stages[name]
}

func TestOpen_Observer(t *testing.T) {
	d := nusctest.New(nusctest.Options{})
	obs := newRecordingObserver()
	tables := mustOpen(t, d, WithObserver(obs))

	for _, stage := range []string{"load", "resolve", "resolve.map_log", "resolve.sensor", "resolve.taxonomy", "resolve.sample"} {
		assert.Equal(t, 1, obs.stage(stage), stage)
	}
	assert.Equal(t, len(d.Samples), obs.tables[TableSample])

	_, _ = tables.Get(TableScene, d.Scenes[0].Token.String())
	_, _ = tables.Get(TableScene, token.New().String())
	_, _ = tables.Get(TableScene, "bad")
	assert.Equal(t, 1, obs.lookups["scene/hit"])
	assert.Equal(t, 1, obs.lookups["scene/miss"])
	assert.Equal(t, 1, obs.lookups["scene/malformed"])
}

func TestReferenceError_Message(t *testing.T) {
	tok := token.MustParse("0123456789abcdef0123456789abcdef")
	ref := token.MustParse("fedcba9876543210fedcba9876543210")

	err := &ReferenceError{Table: TableSampleData, Token: tok, Field: "ego_pose_token", Target: TableEgoPose, Ref: ref}
	assert.Contains(t, err.Error(), "ego_pose_token fedcba9876543210fedcba9876543210 not found in ego_pose")
	assert.True(t, errors.Is(err, ErrUnresolvedReference))

	err = &ReferenceError{Table: TableLog, Token: tok, Field: "map_token", Target: TableMap}
	assert.Contains(t, err.Error(), "no map record links to it")
}
