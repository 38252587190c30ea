// Package nusctest builds small, internally consistent nuScenes datasets for tests.
package nusctest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nuscenes-devkit/core/nusc/model"
	"nuscenes-devkit/core/token"
)

// Version is the dataset version written by Write.
const Version = "v1.0-test"

// Dataset holds the source rows of every table. A nil optional table is not
// written; required tables listed in Omit are not written either.
type Dataset struct {
	Logs        []model.Log
	Maps        []model.Map
	Sensors     []model.Sensor
	Calibrated  []model.CalibratedSensor
	Scenes      []model.Scene
	Samples     []model.Sample
	SampleData  []model.SampleData
	EgoPoses    []model.EgoPose
	Instances   []model.Instance
	Annotations []model.SampleAnnotation
	Categories  []model.Category
	Attributes  []model.Attribute
	LidarSeg    []model.LidarSeg
	Panoptic    []model.Panoptic

	// Omit names table files (without .json) to leave out.
	Omit map[string]bool
	// Raw overrides the contents of a table file.
	Raw map[string]string
}

// Options shapes the generated dataset.
type Options struct {
	Scenes          int
	SamplesPerScene int
	// Channels captured at every sample. Defaults to CAM_FRONT and LIDAR_TOP.
	Channels []model.Channel
}

// New returns a dataset with one map, one log per scene, all twelve sensors,
// and one tracked instance per scene annotated in every sample. lidarseg and
// panoptic rows exist for every lidar capture.
func New(opts Options) *Dataset {
	if opts.Scenes <= 0 {
		opts.Scenes = 2
	}
	if opts.SamplesPerScene <= 0 {
		opts.SamplesPerScene = 3
	}
	if len(opts.Channels) == 0 {
		opts.Channels = []model.Channel{model.CamFront, model.LidarTop}
	}

	d := &Dataset{Omit: map[string]bool{}, Raw: map[string]string{}}

	calibBySensor := make(map[model.Channel]token.Token, model.NumChannels)
	for _, ch := range model.Channels() {
		s := model.Sensor{Token: token.New(), Channel: ch, Modality: modalityOf(ch)}
		c := model.CalibratedSensor{
			Token:       token.New(),
			SensorToken: s.Token,
			Translation: [3]float32{1.7, 0.0, 1.5},
			Rotation:    [4]float32{1, 0, 0, 0},
		}
		if s.Modality == model.Camera {
			c.CameraIntrinsic = model.Intrinsic{
				Matrix: [3][3]float32{{1266.4, 0, 816.3}, {0, 1266.4, 491.5}, {0, 0, 1}},
				Valid:  true,
			}
		}
		d.Sensors = append(d.Sensors, s)
		d.Calibrated = append(d.Calibrated, c)
		calibBySensor[ch] = c.Token
	}

	car, pedestrian := 0, 1
	d.Categories = []model.Category{
		{Token: token.New(), Name: "vehicle.car", Description: "Vehicle designed primarily for personal use.", Index: &car},
		{Token: token.New(), Name: "human.pedestrian.adult", Description: "Adult subcategory.", Index: &pedestrian},
	}
	d.Attributes = []model.Attribute{
		{Token: token.New(), Name: "vehicle.moving", Description: "Vehicle is moving."},
		{Token: token.New(), Name: "pedestrian.standing", Description: "The human is standing."},
	}

	m := model.Map{Token: token.New(), Category: "semantic_prior", Filename: "maps/test.png"}
	timestamp := int64(1531883530449377)

	for sc := range opts.Scenes {
		l := model.Log{
			Token:        token.New(),
			Logfile:      "n015-2018-07-18-11-07-57+0800",
			Vehicle:      "n015",
			DateCaptured: "2018-07-18",
			Location:     "singapore-onenorth",
		}
		d.Logs = append(d.Logs, l)
		m.LogTokens = append(m.LogTokens, l.Token)

		scene := model.Scene{
			Token:       token.New(),
			LogToken:    l.Token,
			Name:        fmt.Sprintf("scene-%04d", sc+1),
			Description: "Test scene",
			NbrSamples:  opts.SamplesPerScene,
		}

		cat := d.Categories[sc%len(d.Categories)]
		inst := model.Instance{Token: token.New(), CategoryToken: cat.Token, NbrAnnotations: opts.SamplesPerScene}

		prevSample := token.None
		prevData := make(map[model.Channel]int)
		prevAnn := -1
		for i := range opts.SamplesPerScene {
			timestamp += 500000
			s := model.Sample{Token: token.New(), SceneToken: scene.Token, Prev: prevSample, Timestamp: timestamp}
			if n := len(d.Samples); prevSample.Valid {
				d.Samples[n-1].Next = token.Some(s.Token)
			}
			d.Samples = append(d.Samples, s)
			prevSample = token.Some(s.Token)
			if i == 0 {
				scene.FirstSampleToken = s.Token
			}
			scene.LastSampleToken = s.Token

			for _, ch := range opts.Channels {
				pose := model.EgoPose{
					Token:       token.New(),
					Timestamp:   timestamp,
					Translation: [3]float32{float32(i), 0, 0},
					Rotation:    [4]float32{1, 0, 0, 0},
				}
				d.EgoPoses = append(d.EgoPoses, pose)

				sd := model.SampleData{
					Token:                 token.New(),
					SampleToken:           s.Token,
					EgoPoseToken:          pose.Token,
					CalibratedSensorToken: calibBySensor[ch],
					Timestamp:             timestamp,
					IsKeyFrame:            true,
				}
				switch modalityOf(ch) {
				case model.Camera:
					sd.Fileformat, sd.Height, sd.Width = "jpg", 900, 1600
				case model.Lidar, model.Radar:
					sd.Fileformat = "pcd"
				}
				sd.Filename = "samples/" + ch.String() + "/" + sd.Token.String() + "." + sd.Fileformat
				if p, ok := prevData[ch]; ok {
					sd.Prev = token.Some(d.SampleData[p].Token)
					d.SampleData[p].Next = token.Some(sd.Token)
				}
				prevData[ch] = len(d.SampleData)
				d.SampleData = append(d.SampleData, sd)

				if ch == model.LidarTop {
					d.LidarSeg = append(d.LidarSeg, model.LidarSeg{
						Token:           token.New(),
						SampleDataToken: sd.Token,
						Filename:        "lidarseg/" + Version + "/" + sd.Token.String() + "_lidarseg.bin",
					})
					d.Panoptic = append(d.Panoptic, model.Panoptic{
						Token:           token.New(),
						SampleDataToken: sd.Token,
						Filename:        "panoptic/" + Version + "/" + sd.Token.String() + "_panoptic.npz",
					})
				}
			}

			ann := model.SampleAnnotation{
				Token:           token.New(),
				SampleToken:     s.Token,
				InstanceToken:   inst.Token,
				AttributeTokens: []token.Token{d.Attributes[sc%len(d.Attributes)].Token},
				Visibility:      model.V80To100,
				Translation:     [3]float32{float32(i), 1, 0},
				Rotation:        [4]float32{1, 0, 0, 0},
				Size:            [3]float32{1.9, 4.6, 1.7},
				NumLidarPts:     12,
			}
			if prevAnn >= 0 {
				ann.Prev = token.Some(d.Annotations[prevAnn].Token)
				d.Annotations[prevAnn].Next = token.Some(ann.Token)
			} else {
				inst.FirstAnnotationToken = ann.Token
			}
			inst.LastAnnotationToken = ann.Token
			prevAnn = len(d.Annotations)
			d.Annotations = append(d.Annotations, ann)
		}

		d.Scenes = append(d.Scenes, scene)
		d.Instances = append(d.Instances, inst)
	}
	d.Maps = []model.Map{m}
	return d
}

func modalityOf(ch model.Channel) model.Modality {
	name := ch.String()
	switch {
	case strings.HasPrefix(name, "CAM"):
		return model.Camera
	case strings.HasPrefix(name, "LIDAR"):
		return model.Lidar
	default:
		return model.Radar
	}
}

// Files returns the encoded table files keyed by file name.
func (d *Dataset) Files(t testing.TB) map[string][]byte {
	t.Helper()
	tables := map[string]any{
		"log":               d.Logs,
		"map":               d.Maps,
		"sensor":            d.Sensors,
		"calibrated_sensor": d.Calibrated,
		"scene":             d.Scenes,
		"sample":            d.Samples,
		"sample_data":       d.SampleData,
		"ego_pose":          d.EgoPoses,
		"instance":          d.Instances,
		"sample_annotation": d.Annotations,
		"category":          d.Categories,
		"attribute":         d.Attributes,
	}
	if d.LidarSeg != nil {
		tables["lidarseg"] = d.LidarSeg
	}
	if d.Panoptic != nil {
		tables["panoptic"] = d.Panoptic
	}

	files := make(map[string][]byte, len(tables))
	for name, rows := range tables {
		if d.Omit[name] {
			continue
		}
		if raw, ok := d.Raw[name]; ok {
			files[name+".json"] = []byte(raw)
			continue
		}
		b, err := json.Marshal(rows)
		if err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		files[name+".json"] = b
	}
	for name, raw := range d.Raw {
		if _, ok := tables[name]; !ok && !d.Omit[name] {
			files[name+".json"] = []byte(raw)
		}
	}
	return files
}

// Write stores the dataset under a fresh temporary dataroot and returns it.
func (d *Dataset) Write(t testing.TB) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, Version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create %s: %v", dir, err)
	}
	for name, b := range d.Files(t) {
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}
