package rgb2gray

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/element"
	"github.com/xaionaro-go/rgb2gray/types"
	"github.com/xaionaro-go/rgb2gray/video"
)

func mustParseCaps(t testing.TB, s string) caps.Caps {
	c, err := caps.Parse(s)
	require.NoError(t, err)
	return c
}

func formatOf(t testing.TB, s caps.Structure) caps.Value {
	v, ok := s.Get("format")
	require.True(t, ok)
	return v
}

// blackWhite2x2 is a 2x2 BGRx frame: black, white / black, white.
func blackWhite2x2() []byte {
	return []byte{
		0, 0, 0, 0, 255, 255, 255, 0,
		0, 0, 0, 0, 255, 255, 255, 0,
	}
}

func configured(t *testing.T, outFormat types.PixelFormat, width, height int) *RGB2Gray {
	ctx := context.Background()
	e := New(ctx)
	in := mustParseCaps(t, "video/x-raw, format=BGRx, width="+itoa(width)+", height="+itoa(height)+", framerate=30/1")
	out := mustParseCaps(t, "video/x-raw, format="+string(outFormat)+", width="+itoa(width)+", height="+itoa(height)+", framerate=30/1")
	require.True(t, e.SetCaps(ctx, in, out))
	return e
}

func itoa(v int) string {
	return caps.Int(v).String()
}

func TestTemplates(t *testing.T) {
	e := New(context.Background())
	src, ok := element.TemplateByDirection(e.Templates(), element.PadDirectionSrc)
	require.True(t, ok)
	sink, ok := element.TemplateByDirection(e.Templates(), element.PadDirectionSink)
	require.True(t, ok)

	assert.Equal(t, caps.StringList{"BGRx", "GRAY8"}, formatOf(t, src.Caps[0]))
	assert.Equal(t, caps.String("BGRx"), formatOf(t, sink.Caps[0]))
	width, _ := sink.Caps[0].Get("width")
	assert.Equal(t, caps.IntRange{Min: 0, Max: math.MaxInt32}, width)

	// the catalog cannot be modified through the returned templates
	src.Caps[0].Set("format", caps.String("I420"))
	assert.Equal(t, caps.StringList{"BGRx", "GRAY8"}, formatOf(t, SrcTemplate().Caps[0]))
}

func TestTransformCapsFromSrc(t *testing.T) {
	ctx := context.Background()
	e := New(ctx)
	requested := mustParseCaps(t, "video/x-raw, format=GRAY8, width=[ 16, 64 ], height=(int)48; video/x-raw, format=BGRx, width=320, height=240, framerate=[ 1/1, 60/1 ]")

	result := e.TransformCaps(ctx, element.PadDirectionSrc, requested, nil)
	require.Len(t, result, len(requested))
	for idx := range requested {
		assert.Equal(t, caps.String("BGRx"), formatOf(t, result[idx]))
		expected := requested[idx].Copy()
		expected.Set("format", caps.String("BGRx"))
		assert.True(t, expected.Equal(result[idx]), "%s != %s", expected, result[idx])
	}

	// the request is not modified
	assert.Equal(t, caps.String("GRAY8"), formatOf(t, requested[0]))
}

func TestTransformCapsFromSink(t *testing.T) {
	ctx := context.Background()
	e := New(ctx)
	requested := mustParseCaps(t, "video/x-raw, format=BGRx, width=2, height=2; video/x-raw, format=BGRx, width=[ 1, 8 ], height=4, framerate=25/1")

	result := e.TransformCaps(ctx, element.PadDirectionSink, requested, nil)
	require.Len(t, result, 2*len(requested))
	for idx := range requested {
		gray := result[idx]
		color := result[len(requested)+idx]
		assert.Equal(t, caps.String("GRAY8"), formatOf(t, gray))
		assert.Equal(t, caps.String("BGRx"), formatOf(t, color))

		for _, f := range requested[idx].Fields {
			if f.Name == "format" {
				continue
			}
			v, ok := gray.Get(f.Name)
			require.True(t, ok)
			assert.Equal(t, f.Value, v)
			v, ok = color.Get(f.Name)
			require.True(t, ok)
			assert.Equal(t, f.Value, v)
		}
	}
}

func TestTransformCapsWithFilter(t *testing.T) {
	ctx := context.Background()
	e := New(ctx)
	requested := mustParseCaps(t, "video/x-raw, format=BGRx, width=2, height=2")

	filter := mustParseCaps(t, "video/x-raw, format={ BGRx, GRAY8 }, width=[ 1, 100 ], height=[ 1, 100 ]")
	result := e.TransformCaps(ctx, element.PadDirectionSink, requested, &filter)
	require.Len(t, result, 2)
	assert.Equal(t, caps.String("GRAY8"), formatOf(t, result[0]))
	assert.Equal(t, caps.String("BGRx"), formatOf(t, result[1]))
	width, _ := result[0].Get("width")
	assert.Equal(t, caps.Int(2), width)

	filter = mustParseCaps(t, "video/x-raw, format=BGRx")
	result = e.TransformCaps(ctx, element.PadDirectionSink, requested, &filter)
	require.Len(t, result, 1)
	assert.Equal(t, caps.String("BGRx"), formatOf(t, result[0]))

	filter = mustParseCaps(t, "video/x-raw, format=I420")
	assert.True(t, e.TransformCaps(ctx, element.PadDirectionSink, requested, &filter).IsEmpty())
	assert.True(t, e.TransformCaps(ctx, element.PadDirectionSrc, requested, &filter).IsEmpty())

	assert.Nil(t, e.TransformCaps(ctx, element.PadDirectionUnknown, requested, nil))
}

func TestSetCapsRefusals(t *testing.T) {
	ctx := context.Background()
	bgrx := "video/x-raw, format=BGRx, width=2, height=2"
	for _, tc := range []struct {
		name string
		in   string
		out  string
	}{
		{"unfixed input", "video/x-raw, format=BGRx, width=[ 1, 2 ], height=2", bgrx},
		{"unfixed output", bgrx, "video/x-raw, format={ BGRx, GRAY8 }, width=2, height=2"},
		{"gray input", "video/x-raw, format=GRAY8, width=2, height=2", bgrx},
		{"scaling", bgrx, "video/x-raw, format=GRAY8, width=4, height=2"},
		{"not video", "audio/x-raw, format=BGRx, width=2, height=2", bgrx},
		{"empty", "", bgrx},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := New(ctx)
			assert.False(t, e.SetCaps(ctx, mustParseCaps(t, tc.in), mustParseCaps(t, tc.out)))
			assert.Nil(t, e.getState())
		})
	}

	// a refused renegotiation keeps the previous configuration
	e := configured(t, types.PixelFormatGRAY8, 2, 2)
	prev := e.getState()
	assert.False(t, e.SetCaps(ctx, mustParseCaps(t, bgrx), mustParseCaps(t, "video/x-raw, format=GRAY8, width=3, height=2")))
	assert.Same(t, prev, e.getState())
}

func TestTransformGray8(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name   string
		shift  uint8
		invert bool
		want   [2]byte
	}{
		{"plain", 0, false, [2]byte{0, 255}},
		{"shift wraps around", 10, false, [2]byte{10, 9}},
		{"inverted", 0, true, [2]byte{255, 0}},
		{"shifted and inverted", 10, true, [2]byte{245, 246}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := configured(t, types.PixelFormatGRAY8, 2, 2)
			e.SetShift(ctx, tc.shift)
			e.SetInvert(ctx, tc.invert)

			out := []byte{0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa}
			require.NoError(t, e.Transform(ctx, blackWhite2x2(), out))
			// GRAY8 rows are padded to 4 bytes; padding is left untouched
			assert.Equal(t, []byte{
				tc.want[0], tc.want[1], 0xaa, 0xaa,
				tc.want[0], tc.want[1], 0xaa, 0xaa,
			}, out)
		})
	}
}

func TestTransformBGRx(t *testing.T) {
	ctx := context.Background()
	e := configured(t, types.PixelFormatBGRx, 2, 2)
	e.SetShift(ctx, 10)

	out := make([]byte, 16)
	for idx := range out {
		out[idx] = 0x77
	}
	require.NoError(t, e.Transform(ctx, blackWhite2x2(), out))
	// B, G and R are set; the x byte is untouched
	assert.Equal(t, []byte{
		10, 10, 10, 0x77, 9, 9, 9, 0x77,
		10, 10, 10, 0x77, 9, 9, 9, 0x77,
	}, out)
}

func TestTransformRespectsStrides(t *testing.T) {
	ctx := context.Background()
	// width 3: BGRx stride is 12, GRAY8 stride is 4 (3 rounded up)
	e := configured(t, types.PixelFormatGRAY8, 3, 2)
	in := []byte{
		0, 0, 255, 0, 0, 255, 0, 0, 255, 0, 0, 0,
		10, 10, 10, 0, 20, 20, 20, 0, 30, 30, 30, 0,
	}
	out := make([]byte, 8)
	require.NoError(t, e.Transform(ctx, in, out))
	assert.Equal(t, []byte{
		bgrxToGray([]byte{0, 0, 255, 0}, 0, false), bgrxToGray([]byte{0, 255, 0, 0}, 0, false), bgrxToGray([]byte{255, 0, 0, 0}, 0, false), 0,
		10, 20, 30, 0,
	}, out)
	assert.Equal(t, []byte{76, 149, 29}, out[:3])
}

func TestTransformNotConfigured(t *testing.T) {
	ctx := context.Background()
	e := New(ctx)
	out := make([]byte, 8)

	err := e.Transform(ctx, blackWhite2x2(), out)
	assert.Equal(t, element.ErrNotNegotiated{}, err)
	assert.True(t, errors.Is(err, element.ErrNotConfigured))
	assert.Equal(t, make([]byte, 8), out)

	e = configured(t, types.PixelFormatGRAY8, 2, 2)
	require.NoError(t, e.Stop(ctx))
	require.NoError(t, e.Stop(ctx))
	err = e.Transform(ctx, blackWhite2x2(), out)
	assert.Equal(t, element.ErrNotNegotiated{}, err)
	assert.Equal(t, make([]byte, 8), out)

	require.NoError(t, New(ctx).Stop(ctx))
}

func TestTransformBufferMapping(t *testing.T) {
	ctx := context.Background()
	e := configured(t, types.PixelFormatGRAY8, 2, 2)

	var mapErr element.ErrBufferMapping
	err := e.Transform(ctx, blackWhite2x2()[:15], make([]byte, 8))
	require.True(t, errors.As(err, &mapErr))
	assert.False(t, mapErr.Writable)
	var tooSmall video.ErrBufferTooSmall
	assert.True(t, errors.As(err, &tooSmall))

	out := make([]byte, 7)
	err = e.Transform(ctx, blackWhite2x2(), out)
	require.True(t, errors.As(err, &mapErr))
	assert.True(t, mapErr.Writable)
	assert.Equal(t, make([]byte, 7), out)

	stats := e.Stats()
	assert.Equal(t, uint64(2), stats.Received.Count)
	assert.Equal(t, uint64(2), stats.Failed.Count)
	assert.Equal(t, uint64(0), stats.Processed.Count)
}

func TestTransformUnsupportedOutputFormat(t *testing.T) {
	ctx := context.Background()
	e := configured(t, types.PixelFormatGRAY8, 2, 2)
	s := *e.getState()
	s.Out.Format = types.PixelFormat("I420")
	e.state = &s

	out := make([]byte, 8)
	if abortOnContractViolation {
		assert.Panics(t, func() {
			_ = e.Transform(ctx, blackWhite2x2(), out)
		})
		assert.Equal(t, make([]byte, 8), out)
		return
	}

	err := e.Transform(ctx, blackWhite2x2(), out)
	assert.Equal(t, element.ErrUnsupportedOutputFormat{Format: "I420"}, err)
	assert.Equal(t, make([]byte, 8), out)
}

func TestUnitSizeMatchesTransform(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		width, height int
		outFormat     types.PixelFormat
	}{
		{2, 2, types.PixelFormatGRAY8},
		{3, 5, types.PixelFormatGRAY8},
		{7, 3, types.PixelFormatBGRx},
		{640, 480, types.PixelFormatGRAY8},
	} {
		e := configured(t, tc.outFormat, tc.width, tc.height)
		s := e.getState()
		inSize, ok := e.UnitSize(ctx, s.In.Caps())
		require.True(t, ok)
		outSize, ok := e.UnitSize(ctx, s.Out.Caps())
		require.True(t, ok)

		require.NoError(t, e.Transform(ctx, make([]byte, inSize), make([]byte, outSize)))
		assert.Error(t, e.Transform(ctx, make([]byte, inSize-1), make([]byte, outSize)))
		assert.Error(t, e.Transform(ctx, make([]byte, inSize), make([]byte, outSize-1)))

		stats := e.Stats()
		assert.Equal(t, uint64(inSize), stats.Processed.Bytes)
		assert.Equal(t, uint64(outSize), stats.Generated.Bytes)
	}

	_, ok := New(ctx).UnitSize(ctx, mustParseCaps(t, "video/x-raw, format=BGRx, width=[ 1, 2 ], height=2"))
	assert.False(t, ok)
}

func TestUnitSizeAgreesWithSetCaps(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		in, out string
		valid   bool
	}{
		{"video/x-raw, format=BGRx, width=2, height=2", "video/x-raw, format=GRAY8, width=2, height=2", true},
		{"video/x-raw, format=bgrx, width=2, height=2", "video/x-raw, format=gray8, width=2, height=2", false},
		{"video/x-raw, format=BGRx, width=2, height=2", "video/x-raw, format=gray8, width=2, height=2", false},
		{"video/x-raw, format=Bgrx, width=2, height=2", "video/x-raw, format=GRAY8, width=2, height=2", false},
	} {
		e := New(ctx)
		in, out := mustParseCaps(t, tc.in), mustParseCaps(t, tc.out)
		_, inOK := e.UnitSize(ctx, in)
		_, outOK := e.UnitSize(ctx, out)
		assert.Equal(t, tc.valid, inOK && outOK, "%s -> %s", tc.in, tc.out)
		assert.Equal(t, tc.valid, e.SetCaps(ctx, in, out), "%s -> %s", tc.in, tc.out)
	}
}

func TestSettingsConcurrentWithTransform(t *testing.T) {
	ctx := context.Background()
	const width, height = 16, 16
	e := configured(t, types.PixelFormatGRAY8, width, height)
	in := make([]byte, width*height*4)
	for idx := range in {
		in[idx] = 255
	}

	var wg sync.WaitGroup
	stopCh := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stopCh:
				return
			default:
			}
			e.SetShift(ctx, uint8(i))
			e.SetInvert(ctx, i%2 == 0)
		}
	}()

	out := make([]byte, width*height)
	for i := 0; i < 200; i++ {
		require.NoError(t, e.Transform(ctx, in, out))
		// each frame is produced with a single settings snapshot
		for _, v := range out {
			require.Equal(t, out[0], v)
		}
	}
	close(stopCh)
	wg.Wait()
}

func TestProperties(t *testing.T) {
	ctx := context.Background()
	e := New(ctx)
	assert.Equal(t, DefaultSettings(), e.Settings(ctx))
	assert.Len(t, e.Properties(), 2)

	require.NoError(t, e.SetProperty(ctx, PropertyShift, "200"))
	require.NoError(t, e.SetProperty(ctx, PropertyInvert, "true"))
	assert.Equal(t, Settings{Shift: 200, Invert: true}, e.Settings(ctx))

	require.NoError(t, e.SetProperty(ctx, PropertyShift, 7))
	require.NoError(t, e.SetProperty(ctx, PropertyInvert, false))
	v, err := e.Property(ctx, PropertyShift)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), v)
	v, err = e.Property(ctx, PropertyInvert)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	var invalid element.ErrInvalidPropertyValue
	assert.True(t, errors.As(e.SetProperty(ctx, PropertyShift, 256), &invalid))
	assert.True(t, errors.As(e.SetProperty(ctx, PropertyShift, "-1"), &invalid))
	assert.True(t, errors.As(e.SetProperty(ctx, PropertyShift, 1.5), &invalid))
	assert.True(t, errors.As(e.SetProperty(ctx, PropertyInvert, "maybe"), &invalid))
	assert.Equal(t, uint8(7), e.Shift(ctx))

	assert.Equal(t, element.ErrUnknownProperty{Name: "gain"}, e.SetProperty(ctx, "gain", 1))
	_, err = e.Property(ctx, "gain")
	assert.Equal(t, element.ErrUnknownProperty{Name: "gain"}, err)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	r := element.NewRegistry()
	require.NoError(t, Register(ctx, r))
	assert.Equal(t, []string{ElementName}, r.Names(ctx))

	el, err := r.New(ctx, ElementName)
	require.NoError(t, err)
	require.IsType(t, &RGB2Gray{}, el)
	assert.Equal(t, "RGB-GRAY Converter", el.Metadata().LongName)

	assert.Error(t, Register(ctx, r))
}

func BenchmarkTransformGray8(b *testing.B) {
	ctx := context.Background()
	e := New(ctx)
	in := mustParseCaps(b, "video/x-raw, format=BGRx, width=1920, height=1080")
	out := mustParseCaps(b, "video/x-raw, format=GRAY8, width=1920, height=1080")
	require.True(b, e.SetCaps(ctx, in, out))
	inBuf := make([]byte, 1920*1080*4)
	outBuf := make([]byte, 1920*1080)
	b.SetBytes(int64(len(inBuf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := e.Transform(ctx, inBuf, outBuf); err != nil {
			b.Fatal(err)
		}
	}
}
