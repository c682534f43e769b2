package caps

import (
	"fmt"
	"strings"
)

type Field struct {
	Name  string
	Value Value
}

// Structure is one capability alternative: a media type name plus an ordered
// set of named fields.
type Structure struct {
	Name   string
	Fields []Field
}

func NewStructure(name string, fields ...Field) Structure {
	s := Structure{Name: name}
	for _, f := range fields {
		s.Set(f.Name, f.Value)
	}
	return s
}

func (s Structure) Get(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the field value, or appends the field if it is not present yet.
func (s *Structure) Set(name string, value Value) {
	for idx := range s.Fields {
		if s.Fields[idx].Name == name {
			s.Fields[idx].Value = value
			return
		}
	}
	s.Fields = append(s.Fields, Field{Name: name, Value: value})
}

func (s Structure) Copy() Structure {
	result := Structure{
		Name:   s.Name,
		Fields: make([]Field, len(s.Fields)),
	}
	for idx, f := range s.Fields {
		result.Fields[idx] = Field{Name: f.Name, Value: copyValue(f.Value)}
	}
	return result
}

func (s Structure) IsFixed() bool {
	for _, f := range s.Fields {
		if !f.Value.IsFixed() {
			return false
		}
	}
	return true
}

// Intersect returns the structure accepting exactly what both s and other
// accept. Fields present in only one of them are carried over unchanged.
func (s Structure) Intersect(other Structure) (Structure, bool) {
	if s.Name != other.Name {
		return Structure{}, false
	}
	result := Structure{Name: s.Name}
	for _, f := range s.Fields {
		otherValue, ok := other.Get(f.Name)
		if !ok {
			result.Fields = append(result.Fields, Field{Name: f.Name, Value: copyValue(f.Value)})
			continue
		}
		v, ok := intersectValues(f.Value, otherValue)
		if !ok {
			return Structure{}, false
		}
		result.Fields = append(result.Fields, Field{Name: f.Name, Value: copyValue(v)})
	}
	for _, f := range other.Fields {
		if _, ok := s.Get(f.Name); ok {
			continue
		}
		result.Fields = append(result.Fields, Field{Name: f.Name, Value: copyValue(f.Value)})
	}
	return result, true
}

func (s Structure) Fixate() Structure {
	result := s.Copy()
	for idx := range result.Fields {
		result.Fields[idx].Value = fixateValue(result.Fields[idx].Value)
	}
	return result
}

func (s Structure) Equal(other Structure) bool {
	if s.Name != other.Name || len(s.Fields) != len(other.Fields) {
		return false
	}
	for _, f := range s.Fields {
		v, ok := other.Get(f.Name)
		if !ok || !valuesEqual(f.Value, v) {
			return false
		}
	}
	return true
}

func (s Structure) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, f := range s.Fields {
		fmt.Fprintf(&b, ", %s=(%s)%s", f.Name, f.Value.typeName(), f.Value)
	}
	return b.String()
}
