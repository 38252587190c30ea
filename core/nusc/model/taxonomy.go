package model

import (
	"nuscenes-devkit/core/record"
	"nuscenes-devkit/core/token"
)

// Category is an object class. Index is only present in lidarseg releases.
type Category struct {
	Token       token.Token `json:"token"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Index       *int        `json:"index"`
}

func (c Category) Key() token.Token { return c.Token }

func (c Category) Fields() record.Fields {
	f := record.Fields{
		{Name: "token", Value: c.Token.String()},
		{Name: "name", Value: c.Name},
		{Name: "description", Value: c.Description},
	}
	if c.Index != nil {
		f = append(f, record.Field{Name: "index", Value: *c.Index})
	}
	return f
}

// Attribute is a property of an instance that can change over time.
type Attribute struct {
	Token       token.Token `json:"token"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

func (a Attribute) Key() token.Token { return a.Token }

func (a Attribute) Fields() record.Fields {
	return record.Fields{
		{Name: "token", Value: a.Token.String()},
		{Name: "name", Value: a.Name},
		{Name: "description", Value: a.Description},
	}
}
