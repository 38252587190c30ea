package model

import (
	"encoding/json"
	"fmt"
)

// Channel identifies one of the fixed sensor positions on the vehicle.
type Channel uint8

const (
	CamBack Channel = iota
	CamBackLeft
	CamBackRight
	CamFront
	CamFrontLeft
	CamFrontRight
	LidarTop
	RadarBackLeft
	RadarBackRight
	RadarFront
	RadarFrontLeft
	RadarFrontRight

	// NumChannels is the size of the closed channel enumeration.
	NumChannels = int(RadarFrontRight) + 1
)

var channelNames = [NumChannels]string{
	"CAM_BACK",
	"CAM_BACK_LEFT",
	"CAM_BACK_RIGHT",
	"CAM_FRONT",
	"CAM_FRONT_LEFT",
	"CAM_FRONT_RIGHT",
	"LIDAR_TOP",
	"RADAR_BACK_LEFT",
	"RADAR_BACK_RIGHT",
	"RADAR_FRONT",
	"RADAR_FRONT_LEFT",
	"RADAR_FRONT_RIGHT",
}

// Channels lists every channel in enumeration order.
func Channels() []Channel {
	out := make([]Channel, NumChannels)
	for i := range out {
		out[i] = Channel(i)
	}
	return out
}

// ParseChannel decodes a channel name such as "CAM_FRONT".
func ParseChannel(s string) (Channel, error) {
	for i, name := range channelNames {
		if name == s {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sensor channel %q", s)
}

func (c Channel) String() string {
	if int(c) < NumChannels {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", c)
}

// UnmarshalJSON decodes the channel name.
func (c *Channel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseChannel(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON encodes the channel name.
func (c Channel) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Modality is the sensor category.
type Modality uint8

const (
	Camera Modality = iota
	Lidar
	Radar
)

var modalityNames = [...]string{"camera", "lidar", "radar"}

// ParseModality decodes "camera", "lidar" or "radar".
func ParseModality(s string) (Modality, error) {
	for i, name := range modalityNames {
		if name == s {
			return Modality(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sensor modality %q", s)
}

func (m Modality) String() string {
	if int(m) < len(modalityNames) {
		return modalityNames[m]
	}
	return fmt.Sprintf("Modality(%d)", m)
}

// UnmarshalJSON decodes the modality name.
func (m *Modality) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseModality(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalJSON encodes the modality name.
func (m Modality) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Visibility is the fraction of an annotated object visible across all cameras.
// The source stores it as a visibility token "1".."4".
type Visibility uint8

const (
	V0To40 Visibility = iota + 1
	V40To60
	V60To80
	V80To100
)

func (v Visibility) String() string {
	switch v {
	case V0To40:
		return "v0-40"
	case V40To60:
		return "v40-60"
	case V60To80:
		return "v60-80"
	case V80To100:
		return "v80-100"
	default:
		return fmt.Sprintf("Visibility(%d)", v)
	}
}

// UnmarshalJSON decodes the visibility token.
func (v *Visibility) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "1":
		*v = V0To40
	case "2":
		*v = V40To60
	case "3":
		*v = V60To80
	case "4":
		*v = V80To100
	default:
		return fmt.Errorf("unknown visibility token %q", s)
	}
	return nil
}

// MarshalJSON encodes the visibility token.
func (v Visibility) MarshalJSON() ([]byte, error) {
	if v < V0To40 || v > V80To100 {
		return nil, fmt.Errorf("invalid visibility %d", v)
	}
	return json.Marshal(fmt.Sprintf("%d", v))
}
