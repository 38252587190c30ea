package export

import (
	"nuscenes-devkit/core/nusc/model"
	"nuscenes-devkit/core/token"
)

// SceneRow is a scene joined with its log.
type SceneRow struct {
	Token            string `gorm:"primaryKey;column:token;type:char(32)"`
	LogToken         string `gorm:"column:log_token;type:char(32);index"`
	Name             string `gorm:"column:name;type:varchar(64)"`
	Description      string `gorm:"column:description;type:varchar(1024)"`
	NbrSamples       int    `gorm:"column:nbr_samples"`
	FirstSampleToken string `gorm:"column:first_sample_token;type:char(32)"`
	LastSampleToken  string `gorm:"column:last_sample_token;type:char(32)"`
	Location         string `gorm:"column:location;type:varchar(64)"`
	Vehicle          string `gorm:"column:vehicle;type:varchar(64)"`
	DateCaptured     string `gorm:"column:date_captured;type:varchar(32)"`
}

func (SceneRow) TableName() string {
	return "scenes"
}

// SampleRow is a keyframe.
type SampleRow struct {
	Token      string  `gorm:"primaryKey;column:token;type:char(32)"`
	SceneToken string  `gorm:"column:scene_token;type:char(32);index"`
	Timestamp  int64   `gorm:"column:timestamp"`
	Prev       *string `gorm:"column:prev;type:char(32)"`
	Next       *string `gorm:"column:next;type:char(32)"`
}

func (SampleRow) TableName() string {
	return "samples"
}

// SampleDataRow is a sensor capture with its resolved channel and modality.
type SampleDataRow struct {
	Token                 string  `gorm:"primaryKey;column:token;type:char(32)"`
	SampleToken           string  `gorm:"column:sample_token;type:char(32);index"`
	EgoPoseToken          string  `gorm:"column:ego_pose_token;type:char(32)"`
	CalibratedSensorToken string  `gorm:"column:calibrated_sensor_token;type:char(32)"`
	Channel               string  `gorm:"column:channel;type:varchar(32);index"`
	Modality              string  `gorm:"column:modality;type:varchar(16)"`
	Filename              string  `gorm:"column:filename;type:varchar(255)"`
	Fileformat            string  `gorm:"column:fileformat;type:varchar(16)"`
	Timestamp             int64   `gorm:"column:timestamp"`
	IsKeyFrame            bool    `gorm:"column:is_key_frame"`
	Width                 int     `gorm:"column:width"`
	Height                int     `gorm:"column:height"`
	Prev                  *string `gorm:"column:prev;type:char(32)"`
	Next                  *string `gorm:"column:next;type:char(32)"`
}

func (SampleDataRow) TableName() string {
	return "sample_data"
}

// AnnotationRow is a 3D box with its resolved category name.
type AnnotationRow struct {
	Token         string  `gorm:"primaryKey;column:token;type:char(32)"`
	SampleToken   string  `gorm:"column:sample_token;type:char(32);index"`
	InstanceToken string  `gorm:"column:instance_token;type:char(32);index"`
	CategoryName  string  `gorm:"column:category_name;type:varchar(64)"`
	Visibility    string  `gorm:"column:visibility;type:varchar(8)"`
	X             float32 `gorm:"column:x"`
	Y             float32 `gorm:"column:y"`
	Z             float32 `gorm:"column:z"`
	Width         float32 `gorm:"column:width"`
	Length        float32 `gorm:"column:length"`
	Height        float32 `gorm:"column:height"`
	QW            float32 `gorm:"column:qw"`
	QX            float32 `gorm:"column:qx"`
	QY            float32 `gorm:"column:qy"`
	QZ            float32 `gorm:"column:qz"`
	NumLidarPts   int     `gorm:"column:num_lidar_pts"`
	NumRadarPts   int     `gorm:"column:num_radar_pts"`
	Prev          *string `gorm:"column:prev;type:char(32)"`
	Next          *string `gorm:"column:next;type:char(32)"`
}

func (AnnotationRow) TableName() string {
	return "sample_annotations"
}

// InstanceRow is a tracked object with its category name.
type InstanceRow struct {
	Token                string `gorm:"primaryKey;column:token;type:char(32)"`
	CategoryToken        string `gorm:"column:category_token;type:char(32)"`
	CategoryName         string `gorm:"column:category_name;type:varchar(64)"`
	NbrAnnotations       int    `gorm:"column:nbr_annotations"`
	FirstAnnotationToken string `gorm:"column:first_annotation_token;type:char(32)"`
	LastAnnotationToken  string `gorm:"column:last_annotation_token;type:char(32)"`
}

func (InstanceRow) TableName() string {
	return "instances"
}

// CategoryRow is a taxonomy entry. LabelIndex is NULL when the dataset has no index.
type CategoryRow struct {
	Token       string `gorm:"primaryKey;column:token;type:char(32)"`
	Name        string `gorm:"column:name;type:varchar(64);uniqueIndex"`
	Description string `gorm:"column:description;type:varchar(1024)"`
	LabelIndex  *int   `gorm:"column:label_index"`
}

func (CategoryRow) TableName() string {
	return "categories"
}

// Models lists every exported model in migration order.
func Models() []any {
	return []any{&CategoryRow{}, &SceneRow{}, &SampleRow{}, &SampleDataRow{}, &InstanceRow{}, &AnnotationRow{}}
}

func optional(o token.Optional) *string {
	if !o.Valid {
		return nil
	}
	s := o.Token.String()
	return &s
}

func sceneRow(sc model.Scene, l model.Log) SceneRow {
	return SceneRow{
		Token:            sc.Token.String(),
		LogToken:         sc.LogToken.String(),
		Name:             sc.Name,
		Description:      sc.Description,
		NbrSamples:       sc.NbrSamples,
		FirstSampleToken: sc.FirstSampleToken.String(),
		LastSampleToken:  sc.LastSampleToken.String(),
		Location:         l.Location,
		Vehicle:          l.Vehicle,
		DateCaptured:     l.DateCaptured,
	}
}

func sampleRow(s model.Sample) SampleRow {
	return SampleRow{
		Token:      s.Token.String(),
		SceneToken: s.SceneToken.String(),
		Timestamp:  s.Timestamp,
		Prev:       optional(s.Prev),
		Next:       optional(s.Next),
	}
}

func sampleDataRow(sd model.SampleData) SampleDataRow {
	return SampleDataRow{
		Token:                 sd.Token.String(),
		SampleToken:           sd.SampleToken.String(),
		EgoPoseToken:          sd.EgoPoseToken.String(),
		CalibratedSensorToken: sd.CalibratedSensorToken.String(),
		Channel:               sd.Channel.String(),
		Modality:              sd.Modality.String(),
		Filename:              sd.Filename,
		Fileformat:            sd.Fileformat,
		Timestamp:             sd.Timestamp,
		IsKeyFrame:            sd.IsKeyFrame,
		Width:                 sd.Width,
		Height:                sd.Height,
		Prev:                  optional(sd.Prev),
		Next:                  optional(sd.Next),
	}
}

func annotationRow(a model.SampleAnnotation) AnnotationRow {
	return AnnotationRow{
		Token:         a.Token.String(),
		SampleToken:   a.SampleToken.String(),
		InstanceToken: a.InstanceToken.String(),
		CategoryName:  a.CategoryName,
		Visibility:    a.Visibility.String(),
		X:             a.Translation[0],
		Y:             a.Translation[1],
		Z:             a.Translation[2],
		Width:         a.Size[0],
		Length:        a.Size[1],
		Height:        a.Size[2],
		QW:            a.Rotation[0],
		QX:            a.Rotation[1],
		QY:            a.Rotation[2],
		QZ:            a.Rotation[3],
		NumLidarPts:   a.NumLidarPts,
		NumRadarPts:   a.NumRadarPts,
		Prev:          optional(a.Prev),
		Next:          optional(a.Next),
	}
}

func instanceRow(ins model.Instance, category string) InstanceRow {
	return InstanceRow{
		Token:                ins.Token.String(),
		CategoryToken:        ins.CategoryToken.String(),
		CategoryName:         category,
		NbrAnnotations:       ins.NbrAnnotations,
		FirstAnnotationToken: ins.FirstAnnotationToken.String(),
		LastAnnotationToken:  ins.LastAnnotationToken.String(),
	}
}

func categoryRow(c model.Category) CategoryRow {
	return CategoryRow{
		Token:       c.Token.String(),
		Name:        c.Name,
		Description: c.Description,
		LabelIndex:  c.Index,
	}
}
