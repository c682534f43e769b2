package caps

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/rgb2gray/types"
)

func rawVideo(format Value, width, height Value) Structure {
	return NewStructure(MediaTypeRawVideo,
		Field{Name: "format", Value: format},
		Field{Name: "width", Value: width},
		Field{Name: "height", Value: height},
	)
}

func TestIntersectKeepsFirstOperandOrder(t *testing.T) {
	anySize := IntRange{Min: 0, Max: math.MaxInt32}
	a := Caps{
		rawVideo(String("GRAY8"), anySize, anySize),
		rawVideo(String("BGRx"), anySize, anySize),
	}
	b := Caps{
		rawVideo(StringList{"BGRx", "GRAY8"}, Int(320), Int(240)),
	}

	r := a.Intersect(b)
	require.Len(t, r, 2)
	assert.Equal(t, String("GRAY8"), must(r[0].Get("format")))
	assert.Equal(t, String("BGRx"), must(r[1].Get("format")))
	assert.Equal(t, Int(320), must(r[0].Get("width")))

	r = b.Intersect(a)
	require.Len(t, r, 2)
	assert.Equal(t, String("GRAY8"), must(r[0].Get("format")))
}

func TestIntersectEmpty(t *testing.T) {
	a := Caps{rawVideo(String("BGRx"), Int(2), Int(2))}
	b := Caps{rawVideo(String("I420"), Int(2), Int(2))}
	assert.True(t, a.Intersect(b).IsEmpty())
	assert.False(t, a.CanIntersect(b))

	c := Caps{rawVideo(String("BGRx"), IntRange{Min: 3, Max: 10}, Int(2))}
	assert.True(t, a.Intersect(c).IsEmpty())

	d := Caps{NewStructure("audio/x-raw")}
	assert.True(t, a.Intersect(d).IsEmpty())
}

func TestIntersectCarriesUnsharedFields(t *testing.T) {
	a := Caps{NewStructure(MediaTypeRawVideo, Field{Name: "format", Value: String("BGRx")})}
	b := Caps{NewStructure(MediaTypeRawVideo, Field{Name: "framerate", Value: Fraction{Num: 30, Den: 1}})}
	r := a.Intersect(b)
	require.Len(t, r, 1)
	assert.Equal(t, Fraction{Num: 30, Den: 1}, must(r[0].Get("framerate")))
	assert.Equal(t, String("BGRx"), must(r[0].Get("format")))
}

func TestFixate(t *testing.T) {
	c := Caps{
		rawVideo(StringList{"GRAY8", "BGRx"}, IntRange{Min: 16, Max: 4096}, Int(8)),
		rawVideo(String("BGRx"), Int(1), Int(1)),
	}
	assert.False(t, c.IsFixed())
	f := c.Fixate()
	require.True(t, f.IsFixed())
	assert.Equal(t, String("GRAY8"), must(f[0].Get("format")))
	assert.Equal(t, Int(16), must(f[0].Get("width")))

	// the original is untouched
	assert.Equal(t, StringList{"GRAY8", "BGRx"}, must(c[0].Get("format")))
	assert.Nil(t, Caps(nil).Fixate())
}

func TestParseRoundTrip(t *testing.T) {
	text := "video/x-raw, format=(string){ BGRx, GRAY8 }, width=(int)[ 0, 2147483647 ], height=(int)[ 0, 2147483647 ], framerate=(fraction)[ 0/1, 2147483647/1 ]; video/x-raw, format=(string)BGRx, width=(int)320, height=(int)240"
	c, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, FractionRange{Min: types.Rational{Num: 0, Den: 1}, Max: types.Rational{Num: math.MaxInt32, Den: 1}}, must(c[0].Get("framerate")))
	assert.Equal(t, text, c.String())

	again, err := Parse(c.String())
	require.NoError(t, err)
	assert.True(t, c.Equal(again))
}

func TestParseUntyped(t *testing.T) {
	c, err := Parse("video/x-raw,format=GRAY8,width=4,height=[1,8],framerate=30000/1001")
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, String("GRAY8"), must(c[0].Get("format")))
	assert.Equal(t, Int(4), must(c[0].Get("width")))
	assert.Equal(t, IntRange{Min: 1, Max: 8}, must(c[0].Get("height")))
	assert.Equal(t, Fraction{Num: 30000, Den: 1001}, must(c[0].Get("framerate")))
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{
		"video/x-raw, width",
		"video/x-raw, width=[1,",
		"video/x-raw, width=(int)abc",
		"video/x-raw, width=[5, 1]",
		"video/x-raw, framerate=(fraction)1/0",
		"video/x-raw, format=(blob)x",
		"width=1",
	} {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}

	c, err := Parse("EMPTY")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestParseFractionRejectsTrailingInput(t *testing.T) {
	_, err := Parse("video/x-raw, framerate=(fraction)30/1garbage")
	assert.Error(t, err)

	c, err := Parse("video/x-raw, framerate=30/1garbage")
	require.NoError(t, err)
	assert.Equal(t, String("30/1garbage"), must(c[0].Get("framerate")))

	_, err = Parse("video/x-raw, framerate=(fraction)[ 0/1, 30/1x ]")
	assert.Error(t, err)
}

func must(v Value, ok bool) Value {
	if !ok {
		return nil
	}
	return v
}
