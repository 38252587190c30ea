package model

import (
	"nuscenes-devkit/core/record"
	"nuscenes-devkit/core/token"
)

// Scene is a continuous recording segment from one log.
type Scene struct {
	Token            token.Token `json:"token"`
	LogToken         token.Token `json:"log_token"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	NbrSamples       int         `json:"nbr_samples"`
	FirstSampleToken token.Token `json:"first_sample_token"`
	LastSampleToken  token.Token `json:"last_sample_token"`
}

func (s Scene) Key() token.Token { return s.Token }

func (s Scene) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: s.Token.String()},
		{Name: "log_token", Value: s.LogToken.String()},
		{Name: "nbr_samples", Value: s.NbrSamples},
		{Name: "first_sample_token", Value: s.FirstSampleToken.String()},
		{Name: "last_sample_token", Value: s.LastSampleToken.String()},
		{Name: "name", Value: s.Name},
		{Name: "description", Value: s.Description},
	}
}

// ChannelTokens holds one sample_data token per channel. The zero token marks an empty slot.
type ChannelTokens [NumChannels]token.Token

// Get returns the token in the channel slot and whether the slot is filled.
func (c ChannelTokens) Get(ch Channel) (token.Token, bool) {
	t := c[ch]
	return t, !t.IsZero()
}

// Fields renders the slots keyed by channel name in enumeration order; empty slots render as "".
func (c ChannelTokens) Fields() record.Fields {
	out := make(record.Fields, NumChannels)
	for i, t := range c {
		v := ""
		if !t.IsZero() {
			v = t.String()
		}
		out[i] = record.Field{Name: Channel(i).String(), Value: v}
	}
	return out
}

// Sample is an annotated keyframe. Data and Anns are derived from SampleData and SampleAnnotation.
type Sample struct {
	Token      token.Token    `json:"token"`
	SceneToken token.Token    `json:"scene_token"`
	Prev       token.Optional `json:"prev"`
	Next       token.Optional `json:"next"`
	Timestamp  int64          `json:"timestamp"`

	Data ChannelTokens `json:"-"`
	Anns []token.Token `json:"-"`
}

func (s Sample) Key() token.Token { return s.Token }

func (s Sample) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: s.Token.String()},
		{Name: "scene_token", Value: s.SceneToken.String()},
		{Name: "prev", Value: s.Prev.String()},
		{Name: "next", Value: s.Next.String()},
		{Name: "timestamp", Value: s.Timestamp},
		{Name: "data", Value: s.Data.Fields()},
		{Name: "anns", Value: token.Strings(s.Anns)},
	}
}

// SampleData is a single sensor capture. Modality and Channel are derived from
// CalibratedSensor and Sensor.
type SampleData struct {
	Token                 token.Token    `json:"token"`
	SampleToken           token.Token    `json:"sample_token"`
	EgoPoseToken          token.Token    `json:"ego_pose_token"`
	CalibratedSensorToken token.Token    `json:"calibrated_sensor_token"`
	Prev                  token.Optional `json:"prev"`
	Next                  token.Optional `json:"next"`
	Fileformat            string         `json:"fileformat"`
	Filename              string         `json:"filename"`
	Timestamp             int64          `json:"timestamp"`
	IsKeyFrame            bool           `json:"is_key_frame"`
	Height                int            `json:"height"`
	Width                 int            `json:"width"`

	Modality Modality `json:"-"`
	Channel  Channel  `json:"-"`
}

func (d SampleData) Key() token.Token { return d.Token }

func (d SampleData) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: d.Token.String()},
		{Name: "sample_token", Value: d.SampleToken.String()},
		{Name: "ego_pose_token", Value: d.EgoPoseToken.String()},
		{Name: "calibrated_sensor_token", Value: d.CalibratedSensorToken.String()},
		{Name: "prev", Value: d.Prev.String()},
		{Name: "next", Value: d.Next.String()},
		{Name: "fileformat", Value: d.Fileformat},
		{Name: "filename", Value: d.Filename},
		{Name: "timestamp", Value: d.Timestamp},
		{Name: "is_key_frame", Value: d.IsKeyFrame},
		{Name: "height", Value: d.Height},
		{Name: "width", Value: d.Width},
		{Name: "modality", Value: d.Modality.String()},
		{Name: "channel", Value: d.Channel.String()},
	}
}

// EgoPose is the vehicle pose at a capture timestamp.
type EgoPose struct {
	Token       token.Token `json:"token"`
	Timestamp   int64       `json:"timestamp"`
	Translation [3]float32  `json:"translation"`
	Rotation    [4]float32  `json:"rotation"`
}

func (e EgoPose) Key() token.Token { return e.Token }

func (e EgoPose) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: e.Token.String()},
		{Name: "timestamp", Value: e.Timestamp},
		{Name: "translation", Value: e.Translation},
		{Name: "rotation", Value: e.Rotation},
	}
}
