package models

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
)

// PartialTag is a tag reference
type PartialTag struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
}

// Tag is a catalog tag with its group
type Tag struct {
	PartialTag
	Group       TagGroup `json:"group" validate:"required,tag_group"`
	Description *string  `json:"description,omitempty"`
}

// Tags is the tag catalog keyed by tag id
type Tags map[string]Tag

// UnmarshalJSON decodes entry by entry so a bad entry is reported under its
// key. Keys are visited in sorted order.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewShapeError("", "tag catalog must be an object", err)
	}
	if raw == nil {
		*t = nil
		return nil
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(Tags, len(raw))
	for _, key := range keys {
		var tag Tag
		if err := json.Unmarshal(raw[key], &tag); err != nil {
			var shapeErr *ShapeError
			if errors.As(err, &shapeErr) {
				return shapeErr.withPrefix("[" + key + "]")
			}
			return NewShapeError("["+key+"]", "does not match the expected shape", err)
		}
		out[key] = tag
	}
	*t = out
	return nil
}

// Lookup resolves one tag id
func (t Tags) Lookup(id int) (Tag, error) {
	tag, ok := t[strconv.Itoa(id)]
	if !ok {
		return Tag{}, NewLookupError(TableTag, strconv.Itoa(id))
	}
	if !tag.Group.IsValid() {
		return Tag{}, NewShapeError("tags["+strconv.Itoa(id)+"].group", "must be one of Format, Genre, Theme, Content", nil)
	}
	return tag, nil
}

// Resolve looks up every id in order, failing on the first miss
func (t Tags) Resolve(ids []int) ([]Tag, error) {
	out := make([]Tag, 0, len(ids))
	for _, id := range ids {
		tag, err := t.Lookup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, nil
}

// ByGroup lists the tags of one group ordered by id
func (t Tags) ByGroup(group TagGroup) []Tag {
	var out []Tag
	for _, tag := range t {
		if tag.Group == group {
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
