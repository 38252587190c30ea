package model

import (
	"nuscenes-devkit/core/record"
	"nuscenes-devkit/core/token"
)

// LidarSeg points to the per-point semantic labels of a lidar capture.
type LidarSeg struct {
	Token           token.Token `json:"token"`
	SampleDataToken token.Token `json:"sample_data_token"`
	Filename        string      `json:"filename"`
}

func (l LidarSeg) Key() token.Token { return l.Token }

func (l LidarSeg) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: l.Token.String()},
		{Name: "sample_data_token", Value: l.SampleDataToken.String()},
		{Name: "filename", Value: l.Filename},
	}
}

// Panoptic points to the per-point panoptic labels of a lidar capture.
type Panoptic struct {
	Token           token.Token `json:"token"`
	SampleDataToken token.Token `json:"sample_data_token"`
	Filename        string      `json:"filename"`
}

func (p Panoptic) Key() token.Token { return p.Token }

func (p Panoptic) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: p.Token.String()},
		{Name: "sample_data_token", Value: p.SampleDataToken.String()},
		{Name: "filename", Value: p.Filename},
	}
}
