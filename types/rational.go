package types

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Rational is a fraction, used for frame rates.
type Rational struct {
	Num int
	Den int
}

// Cmp compares r and other as numbers: -1 if r < other, 0 if equal, +1 if r > other.
// Both denominators must be positive.
func (r Rational) Cmp(other Rational) int {
	a := int64(r.Num) * int64(other.Den)
	b := int64(other.Num) * int64(r.Den)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (r Rational) IsValid() bool {
	return r.Den > 0 && r.Num >= 0
}

func newNTSCRationalFromFloat64(f float64) *big.Rat {
	den := 1001 // common denominator for NTSC frame rates
	num := math.Ceil(f) * 1000
	r := big.NewRat(int64(num), int64(den))
	confirmValue, _ := r.Float64()
	if math.Abs(f-confirmValue) < 1e-2 {
		return r
	}
	return nil
}

// RationalFromApproxFloat64 prefers NTSC-style x000/1001 fractions when fps is
// close enough to one of them.
func RationalFromApproxFloat64(fps float64) Rational {
	if float64(int(fps)) == fps {
		return Rational{Num: int(fps), Den: 1}
	}

	if rat := newNTSCRationalFromFloat64(fps); rat != nil {
		return Rational{
			Num: int(rat.Num().Int64()),
			Den: int(rat.Denom().Int64()),
		}
	}

	return RationalFromFloat64(fps)
}

func RationalFromFloat64(fps float64) Rational {
	if float64(int(fps)) == fps {
		return Rational{Num: int(fps), Den: 1}
	}

	r := Rational{
		Num: int(math.Round(fps * 1000000)),
		Den: 1000000,
	}
	gcd := big.NewInt(0).GCD(nil, nil, big.NewInt(int64(r.Num)), big.NewInt(int64(r.Den))).Int64()
	if gcd > 1 {
		r.Num /= int(gcd)
		r.Den /= int(gcd)
	}
	return r
}

// RationalFromString parses "30", "30000/1001", "29.97" or "~29.97"
// (the latter snapping to the closest NTSC rate).
func RationalFromString(s string) (*Rational, error) {
	var r Rational
	switch {
	case len(s) == 0:
		return nil, fmt.Errorf("unable to parse Rational from empty string")
	case strings.Contains(s, "/"):
		v, err := RationalFromFraction(s)
		if err != nil {
			return nil, err
		}
		r = v
	case s[0] == '~':
		fps, err := strconv.ParseFloat(s[1:], 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
		r = RationalFromApproxFloat64(fps)
	default:
		fps, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
		r = RationalFromFloat64(fps)
	}
	if r.Den == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &r, nil
}

// RationalFromFraction parses exactly "NUM/DEN"; trailing input is an error.
func RationalFromFraction(s string) (Rational, error) {
	numStr, denStr, ok := strings.Cut(s, "/")
	if !ok {
		return Rational{}, fmt.Errorf("unable to parse Rational from %q: no '/'", s)
	}
	num, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return Rational{}, fmt.Errorf("unable to parse the numerator of %q: %w", s, err)
	}
	den, err := strconv.Atoi(strings.TrimSpace(denStr))
	if err != nil {
		return Rational{}, fmt.Errorf("unable to parse the denominator of %q: %w", s, err)
	}
	return Rational{Num: num, Den: den}, nil
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Set implements pflag.Value.
func (r *Rational) Set(s string) error {
	v, err := RationalFromString(s)
	if err != nil {
		return err
	}
	*r = *v
	return nil
}

// Type implements pflag.Value.
func (r *Rational) Type() string {
	return "rational"
}
