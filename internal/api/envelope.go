package api

import (
	"encoding/json"
	"fmt"
	"strconv"

	"carbook/internal/utils"
)

// resourceDoc is the backend's response envelope. Data may hold a single
// resource object or a list of them.
type resourceDoc struct {
	Data json.RawMessage `json:"data"`
	Meta map[string]any  `json:"meta"`
}

// resourceObject is one entry of the data/attributes/relationship envelope.
// No field is guaranteed; every accessor falls back to a zero value.
type resourceObject struct {
	ID           any                    `json:"id"`
	Type         string                 `json:"type"`
	Attributes   map[string]any         `json:"attributes"`
	Relationship map[string]resourceDoc `json:"relationship"`
}

func (o *resourceObject) id() string {
	switch v := o.ID.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

func (o *resourceObject) str(key string) string {
	if v, ok := o.Attributes[key].(string); ok {
		return v
	}
	return ""
}

// num reads a numeric attribute, coercing numeric strings.
func (o *resourceObject) num(key string) float64 {
	return utils.ParseAmount(o.Attributes[key])
}

func (o *resourceObject) integer(key string) int {
	return int(o.num(key))
}

// rel decodes a single related resource, returning an empty object when the
// relationship is absent or malformed.
func (o *resourceObject) rel(name string) *resourceObject {
	doc, ok := o.Relationship[name]
	if !ok {
		return &resourceObject{}
	}
	return decodeOne(doc)
}

// objects reads an attribute holding a list of plain objects (the shape the
// filter metadata endpoint uses for brands and types).
func (o *resourceObject) objects(key string) []map[string]any {
	raw, ok := o.Attributes[key].([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func decodeOne(doc resourceDoc) *resourceObject {
	obj := &resourceObject{}
	if len(doc.Data) > 0 {
		_ = json.Unmarshal(doc.Data, obj)
	}
	if obj.Attributes == nil {
		obj.Attributes = map[string]any{}
	}
	return obj
}

func decodeMany(doc resourceDoc) []resourceObject {
	if len(doc.Data) == 0 {
		return nil
	}
	var list []resourceObject
	if err := json.Unmarshal(doc.Data, &list); err != nil {
		// some endpoints wrap a single object where a list is expected
		single := decodeOne(doc)
		if single.ID == nil && len(single.Attributes) == 0 {
			return nil
		}
		return []resourceObject{*single}
	}
	for i := range list {
		if list[i].Attributes == nil {
			list[i].Attributes = map[string]any{}
		}
	}
	return list
}

// metaInt reads a pagination field from the response meta block.
func (d *resourceDoc) metaInt(key string, def int) int {
	if d.Meta == nil {
		return def
	}
	if v, ok := d.Meta[key]; ok {
		if n := utils.ParseAmount(v); n != 0 || fmt.Sprint(v) == "0" {
			return int(n)
		}
	}
	return def
}
