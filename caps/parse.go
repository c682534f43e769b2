// parse.go parses the textual form produced by Caps.String.

package caps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xaionaro-go/rgb2gray/types"
)

// Parse reads caps in the form
//
//	video/x-raw, format=(string){ BGRx, GRAY8 }, width=(int)[ 0, 2147483647 ]; video/x-raw, ...
//
// Type annotations are optional: a value with a "/" is a fraction, a number is
// an int and anything else is a string.
func Parse(s string) (Caps, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "EMPTY" {
		return nil, nil
	}
	var result Caps
	for _, structStr := range strings.Split(s, ";") {
		structStr = strings.TrimSpace(structStr)
		if structStr == "" {
			continue
		}
		st, err := ParseStructure(structStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse structure %q: %w", structStr, err)
		}
		result = append(result, st)
	}
	return result, nil
}

func ParseStructure(s string) (Structure, error) {
	parts, err := splitTopLevel(s)
	if err != nil {
		return Structure{}, err
	}
	name := strings.TrimSpace(parts[0])
	if name == "" || strings.Contains(name, "=") {
		return Structure{}, fmt.Errorf("missing media type name")
	}
	st := Structure{Name: name}
	for _, part := range parts[1:] {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return Structure{}, fmt.Errorf("field %q has no value", part)
		}
		k = strings.TrimSpace(k)
		if k == "" {
			return Structure{}, fmt.Errorf("field %q has no name", part)
		}
		value, err := parseValue(strings.TrimSpace(v))
		if err != nil {
			return Structure{}, fmt.Errorf("unable to parse field %q: %w", k, err)
		}
		st.Set(k, value)
	}
	return st, nil
}

func splitTopLevel(s string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)
	for idx, r := range s {
		switch r {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced %q at position %d", r, idx)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:idx])
				start = idx + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets")
	}
	return append(parts, s[start:]), nil
}

func parseValue(s string) (Value, error) {
	var typeName string
	if strings.HasPrefix(s, "(") {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return nil, fmt.Errorf("unterminated type annotation")
		}
		typeName = s[1:end]
		s = strings.TrimSpace(s[end+1:])
	}
	if s == "" {
		return nil, fmt.Errorf("empty value")
	}

	switch {
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		var list StringList
		for _, item := range strings.Split(s[1:len(s)-1], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			list = append(list, item)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("empty list")
		}
		return list, nil
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		minStr, maxStr, ok := strings.Cut(s[1:len(s)-1], ",")
		if !ok {
			return nil, fmt.Errorf("range %q must have two bounds", s)
		}
		minV, err := parseScalar(strings.TrimSpace(minStr), typeName)
		if err != nil {
			return nil, err
		}
		maxV, err := parseScalar(strings.TrimSpace(maxStr), typeName)
		if err != nil {
			return nil, err
		}
		switch minV := minV.(type) {
		case Int:
			maxV, ok := maxV.(Int)
			if !ok || maxV < minV {
				return nil, fmt.Errorf("invalid int range %q", s)
			}
			return IntRange{Min: int(minV), Max: int(maxV)}, nil
		case Fraction:
			maxV, ok := maxV.(Fraction)
			if !ok || types.Rational(maxV).Cmp(types.Rational(minV)) < 0 {
				return nil, fmt.Errorf("invalid fraction range %q", s)
			}
			return FractionRange{Min: types.Rational(minV), Max: types.Rational(maxV)}, nil
		default:
			return nil, fmt.Errorf("range of %T is not supported", minV)
		}
	default:
		return parseScalar(s, typeName)
	}
}

func parseScalar(s string, typeName string) (Value, error) {
	switch typeName {
	case "string":
		return String(s), nil
	case "int":
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("unable to parse int %q: %w", s, err)
		}
		return Int(v), nil
	case "fraction":
		r, err := parseFraction(s)
		if err != nil {
			return nil, err
		}
		return Fraction(r), nil
	case "":
	default:
		return nil, fmt.Errorf("unknown value type %q", typeName)
	}

	if strings.Contains(s, "/") {
		if r, err := parseFraction(s); err == nil {
			return Fraction(r), nil
		}
	}
	if v, err := strconv.Atoi(s); err == nil {
		return Int(v), nil
	}
	return String(s), nil
}

func parseFraction(s string) (types.Rational, error) {
	r, err := types.RationalFromFraction(s)
	if err != nil {
		return r, fmt.Errorf("unable to parse fraction %q: %w", s, err)
	}
	if r.Den <= 0 {
		return r, fmt.Errorf("fraction %q has non-positive denominator", s)
	}
	return r, nil
}
