package model

import (
	"encoding/json"
	"fmt"

	"nuscenes-devkit/core/record"
	"nuscenes-devkit/core/token"
)

// Log describes one recording session. MapToken is derived from Map.LogTokens.
type Log struct {
	Token        token.Token `json:"token"`
	Logfile      string      `json:"logfile"`
	Vehicle      string      `json:"vehicle"`
	DateCaptured string      `json:"date_captured"`
	Location     string      `json:"location"`
	MapToken     token.Token `json:"-"`
}

func (l Log) Key() token.Token { return l.Token }

func (l Log) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: l.Token.String()},
		{Name: "logfile", Value: l.Logfile},
		{Name: "vehicle", Value: l.Vehicle},
		{Name: "date_captured", Value: l.DateCaptured},
		{Name: "location", Value: l.Location},
		{Name: "map_token", Value: l.MapToken.String()},
	}
}

// Map is a semantic map raster; it owns the logs recorded on it.
type Map struct {
	Token     token.Token   `json:"token"`
	LogTokens []token.Token `json:"log_tokens"`
	Category  string        `json:"category"`
	Filename  string        `json:"filename"`
}

func (m Map) Key() token.Token { return m.Token }

func (m Map) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: m.Token.String()},
		{Name: "log_tokens", Value: token.Strings(m.LogTokens)},
		{Name: "category", Value: m.Category},
		{Name: "filename", Value: m.Filename},
	}
}

// Sensor is one of the fixed sensors of the vehicle.
type Sensor struct {
	Token    token.Token `json:"token"`
	Channel  Channel     `json:"channel"`
	Modality Modality    `json:"modality"`
}

func (s Sensor) Key() token.Token { return s.Token }

func (s Sensor) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: s.Token.String()},
		{Name: "channel", Value: s.Channel.String()},
		{Name: "modality", Value: s.Modality.String()},
	}
}

// Intrinsic is an optional 3x3 camera matrix. Non-camera sensors carry an empty matrix.
type Intrinsic struct {
	Matrix [3][3]float32
	Valid  bool
}

// UnmarshalJSON accepts [] (absent) or a 3x3 array.
func (in *Intrinsic) UnmarshalJSON(b []byte) error {
	var rows [][]float32
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		*in = Intrinsic{}
		return nil
	}
	if len(rows) != 3 {
		return fmt.Errorf("expected a 3x3 matrix, got %d rows", len(rows))
	}
	var m [3][3]float32
	for i, row := range rows {
		if len(row) != 3 {
			return fmt.Errorf("expected a 3x3 matrix, row %d has %d columns", i, len(row))
		}
		copy(m[i][:], row)
	}
	*in = Intrinsic{Matrix: m, Valid: true}
	return nil
}

// MarshalJSON encodes the matrix, or [] when absent.
func (in Intrinsic) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.Rows())
}

// Rows returns the matrix as nested slices, or an empty list when absent.
func (in Intrinsic) Rows() [][]float32 {
	if !in.Valid {
		return [][]float32{}
	}
	out := make([][]float32, 3)
	for i := range in.Matrix {
		out[i] = in.Matrix[i][:]
	}
	return out
}

// CalibratedSensor is the calibration of a sensor on a particular vehicle.
type CalibratedSensor struct {
	Token           token.Token `json:"token"`
	SensorToken     token.Token `json:"sensor_token"`
	Translation     [3]float32  `json:"translation"`
	Rotation        [4]float32  `json:"rotation"`
	CameraIntrinsic Intrinsic   `json:"camera_intrinsic"`
}

func (c CalibratedSensor) Key() token.Token { return c.Token }

func (c CalibratedSensor) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: c.Token.String()},
		{Name: "sensor_token", Value: c.SensorToken.String()},
		{Name: "translation", Value: c.Translation},
		{Name: "rotation", Value: c.Rotation},
		{Name: "camera_intrinsic", Value: c.CameraIntrinsic.Rows()},
	}
}
