package model

import (
	"nuscenes-devkit/core/record"
	"nuscenes-devkit/core/token"
)

// Instance is one tracked object across its annotated lifetime.
type Instance struct {
	Token                token.Token `json:"token"`
	CategoryToken        token.Token `json:"category_token"`
	NbrAnnotations       int         `json:"nbr_annotations"`
	FirstAnnotationToken token.Token `json:"first_annotation_token"`
	LastAnnotationToken  token.Token `json:"last_annotation_token"`
}

func (i Instance) Key() token.Token { return i.Token }

func (i Instance) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: i.Token.String()},
		{Name: "category_token", Value: i.CategoryToken.String()},
		{Name: "nbr_annotations", Value: i.NbrAnnotations},
		{Name: "first_annotation_token", Value: i.FirstAnnotationToken.String()},
		{Name: "last_annotation_token", Value: i.LastAnnotationToken.String()},
	}
}

// SampleAnnotation is a 3D box of an instance in one sample. CategoryName is
// derived from Instance and Category.
type SampleAnnotation struct {
	Token           token.Token    `json:"token"`
	SampleToken     token.Token    `json:"sample_token"`
	InstanceToken   token.Token    `json:"instance_token"`
	AttributeTokens []token.Token  `json:"attribute_tokens"`
	Prev            token.Optional `json:"prev"`
	Next            token.Optional `json:"next"`
	Visibility      Visibility     `json:"visibility_token"`
	Translation     [3]float32     `json:"translation"`
	Rotation        [4]float32     `json:"rotation"`
	Size            [3]float32     `json:"size"`
	NumLidarPts     int            `json:"num_lidar_pts"`
	NumRadarPts     int            `json:"num_radar_pts"`

	CategoryName string `json:"-"`
}

func (a SampleAnnotation) Key() token.Token { return a.Token }

func (a SampleAnnotation) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: a.Token.String()},
		{Name: "sample_token", Value: a.SampleToken.String()},
		{Name: "instance_token", Value: a.InstanceToken.String()},
		{Name: "attribute_tokens", Value: token.Strings(a.AttributeTokens)},
		{Name: "prev", Value: a.Prev.String()},
		{Name: "next", Value: a.Next.String()},
		{Name: "visibility", Value: a.Visibility.String()},
		{Name: "translation", Value: a.Translation},
		{Name: "rotation", Value: a.Rotation},
		{Name: "size", Value: a.Size},
		{Name: "num_lidar_pts", Value: a.NumLidarPts},
		{Name: "num_radar_pts", Value: a.NumRadarPts},
		{Name: "category_name", Value: a.CategoryName},
	}
}
