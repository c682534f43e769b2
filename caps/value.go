// value.go defines the field values of a capability structure.

package caps

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xaionaro-go/rgb2gray/types"
)

// Value is a field value: either a fixed value or a set of acceptable values.
type Value interface {
	fmt.Stringer
	IsFixed() bool
	typeName() string
}

type String string

type StringList []string

type Int int

type IntRange types.IntRange

type Fraction types.Rational

type FractionRange types.FractionRange

var (
	_ Value = String("")
	_ Value = StringList(nil)
	_ Value = Int(0)
	_ Value = IntRange{}
	_ Value = Fraction{}
	_ Value = FractionRange{}
)

func (String) IsFixed() bool     { return true }
func (StringList) IsFixed() bool { return false }
func (Int) IsFixed() bool        { return true }
func (r IntRange) IsFixed() bool { return r.Min == r.Max }
func (Fraction) IsFixed() bool   { return true }
func (r FractionRange) IsFixed() bool {
	return types.Rational(r.Min).Cmp(r.Max) == 0
}

func (String) typeName() string        { return "string" }
func (StringList) typeName() string    { return "string" }
func (Int) typeName() string           { return "int" }
func (IntRange) typeName() string      { return "int" }
func (Fraction) typeName() string      { return "fraction" }
func (FractionRange) typeName() string { return "fraction" }

func (v String) String() string { return string(v) }
func (v StringList) String() string {
	return "{ " + strings.Join(v, ", ") + " }"
}
func (v Int) String() string           { return fmt.Sprintf("%d", int(v)) }
func (r IntRange) String() string      { return types.IntRange(r).String() }
func (v Fraction) String() string      { return types.Rational(v).String() }
func (r FractionRange) String() string { return types.FractionRange(r).String() }

// intersectValues returns the set of values accepted by both a and b.
func intersectValues(a, b Value) (Value, bool) {
	switch a := a.(type) {
	case String:
		switch b := b.(type) {
		case String:
			return a, a == b
		case StringList:
			return a, slices.Contains(b, string(a))
		}
	case StringList:
		switch b := b.(type) {
		case String:
			return b, slices.Contains(a, string(b))
		case StringList:
			var common StringList
			for _, s := range a {
				if slices.Contains(b, s) {
					common = append(common, s)
				}
			}
			switch len(common) {
			case 0:
				return nil, false
			case 1:
				return String(common[0]), true
			default:
				return common, true
			}
		}
	case Int:
		switch b := b.(type) {
		case Int:
			return a, a == b
		case IntRange:
			return a, types.IntRange(b).Contains(int(a))
		}
	case IntRange:
		switch b := b.(type) {
		case Int:
			return b, types.IntRange(a).Contains(int(b))
		case IntRange:
			r, ok := types.IntRange(a).Intersect(types.IntRange(b))
			if !ok {
				return nil, false
			}
			if r.Min == r.Max {
				return Int(r.Min), true
			}
			return IntRange(r), true
		}
	case Fraction:
		switch b := b.(type) {
		case Fraction:
			return a, types.Rational(a).Cmp(types.Rational(b)) == 0
		case FractionRange:
			return a, types.FractionRange(b).Contains(types.Rational(a))
		}
	case FractionRange:
		switch b := b.(type) {
		case Fraction:
			return b, types.FractionRange(a).Contains(types.Rational(b))
		case FractionRange:
			r, ok := types.FractionRange(a).Intersect(types.FractionRange(b))
			if !ok {
				return nil, false
			}
			if r.Min.Cmp(r.Max) == 0 {
				return Fraction(r.Min), true
			}
			return FractionRange(r), true
		}
	}
	return nil, false
}

// fixateValue picks one concrete value out of a set: the first list item or
// the lower bound of a range.
func fixateValue(v Value) Value {
	switch v := v.(type) {
	case StringList:
		if len(v) == 0 {
			return v
		}
		return String(v[0])
	case IntRange:
		return Int(v.Min)
	case FractionRange:
		return Fraction(v.Min)
	default:
		return v
	}
}

func copyValue(v Value) Value {
	if l, ok := v.(StringList); ok {
		return slices.Clone(l)
	}
	return v
}

func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case StringList:
		b, ok := b.(StringList)
		return ok && slices.Equal(a, b)
	default:
		return a == b
	}
}
