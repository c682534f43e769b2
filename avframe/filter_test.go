package avframe

import (
	"context"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/element/rgb2gray"
	"github.com/xaionaro-go/rgb2gray/types"
)

func newBGR0Frame(t *testing.T, width, height int, data []byte) *astiav.Frame {
	f := astiav.AllocFrame()
	f.SetWidth(width)
	f.SetHeight(height)
	f.SetPixelFormat(astiav.PixelFormatBgr0)
	require.NoError(t, f.AllocBuffer(0))
	require.NoError(t, f.Data().SetBytes(data, 1))
	return f
}

func TestFilterProcess(t *testing.T) {
	ctx := context.Background()
	filter := NewFilter(ctx, rgb2gray.New(ctx), types.Rational{Num: 30, Den: 1}, nil)
	defer filter.Close(ctx)

	src := newBGR0Frame(t, 2, 2, []byte{
		0, 0, 0, 0, 255, 255, 255, 0,
		0, 0, 0, 0, 255, 255, 255, 0,
	})
	defer src.Free()
	src.SetPts(42)

	dst, err := filter.Process(ctx, src)
	require.NoError(t, err)
	defer dst.Free()

	assert.Equal(t, astiav.PixelFormatGray8, dst.PixelFormat())
	assert.Equal(t, int64(42), dst.Pts())
	b, err := dst.Data().Bytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 255, 0, 255}, b)
}

func TestFilterRenegotiates(t *testing.T) {
	ctx := context.Background()
	downstream := caps.Caps{caps.NewStructure(caps.MediaTypeRawVideo, caps.Field{Name: "format", Value: caps.String("BGRx")})}
	filter := NewFilter(ctx, rgb2gray.New(ctx), types.Rational{Num: 25, Den: 1}, &downstream)
	defer filter.Close(ctx)

	for _, size := range [][2]int{{1, 1}, {3, 2}, {3, 2}} {
		src := newBGR0Frame(t, size[0], size[1], make([]byte, size[0]*size[1]*4))
		dst, err := filter.Process(ctx, src)
		src.Free()
		require.NoError(t, err)
		assert.Equal(t, astiav.PixelFormatBgr0, dst.PixelFormat())
		assert.Equal(t, size[0], dst.Width())
		assert.Equal(t, size[1], dst.Height())
		dst.Free()
	}
	assert.Equal(t, uint64(3), filter.Host.Stats().Processed.Count)
}

func TestFilterUnsupportedInput(t *testing.T) {
	ctx := context.Background()
	filter := NewFilter(ctx, rgb2gray.New(ctx), types.Rational{Num: 25, Den: 1}, nil)
	defer filter.Close(ctx)

	src := astiav.AllocFrame()
	defer src.Free()
	src.SetWidth(2)
	src.SetHeight(2)
	src.SetPixelFormat(astiav.PixelFormatYuv420P)
	require.NoError(t, src.AllocBuffer(0))

	_, err := filter.Process(ctx, src)
	assert.Error(t, err)
}
