package pixgrid

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{name: "empty", width: 0, height: 0},
		{name: "row", width: 7, height: 1},
		{name: "square", width: 4, height: 4},
		{name: "negative_width", width: -1, height: 3, wantErr: true},
		{name: "negative_height", width: 3, height: -2, wantErr: true},
		{name: "overflow", width: 1 << 62, height: 4, wantErr: true},
		{name: "too_large", width: MaxSamples, height: 2, wantErr: true},
		{name: "zero_height_wide", width: MaxSamples * 4, height: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(tc.width, tc.height)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDimension))
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.width, g.Width())
			assert.Equal(t, tc.height, g.Height())
			assert.Equal(t, tc.width*tc.height, g.Len())
			for _, s := range g.Pix {
				assert.Equal(t, Sample{}, s)
			}
		})
	}
}

func TestFromSamples(t *testing.T) {
	samples := []Sample{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}, {13, 14, 15}, {16, 17, 18}}

	g, err := FromSamples(3, 2, samples)
	require.NoError(t, err)
	assert.Equal(t, Sample{1, 2, 3}, g.SampleAt(0, 0))
	assert.Equal(t, Sample{7, 8, 9}, g.SampleAt(2, 0))
	assert.Equal(t, Sample{10, 11, 12}, g.SampleAt(0, 1))

	samples[0] = Sample{}
	assert.Equal(t, Sample{1, 2, 3}, g.SampleAt(0, 0), "grid must own its samples")

	_, err = FromSamples(2, 2, samples)
	assert.True(t, errors.Is(err, ErrInvalidDimension))

	_, err = FromSamples(-3, -2, samples)
	assert.True(t, errors.Is(err, ErrInvalidDimension))

	// A wrapped-around product must not match an empty slice.
	g, err = FromSamples(1<<62, 4, nil)
	assert.True(t, errors.Is(err, ErrInvalidDimension))
	assert.Nil(t, g)
}

func TestSetAndOutOfRange(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	g.Set(1, 1, Sample{0xAA, 0xBB, 0xCC})
	assert.Equal(t, Sample{0xAA, 0xBB, 0xCC}, g.SampleAt(1, 1))
	assert.Equal(t, Sample{0xAA, 0xBB, 0xCC}, g.Pix[3])

	g.Set(2, 0, Sample{1, 1, 1})
	g.Set(-1, 0, Sample{1, 1, 1})
	for _, s := range g.Pix[:3] {
		assert.Equal(t, Sample{}, s)
	}
	assert.Equal(t, Sample{}, g.SampleAt(5, 5))
}

func TestClone(t *testing.T) {
	g, err := FromSamples(1, 2, []Sample{{1, 1, 1}, {2, 2, 2}})
	require.NoError(t, err)

	c := g.Clone()
	c.Set(0, 0, Sample{9, 9, 9})
	assert.Equal(t, Sample{1, 1, 1}, g.SampleAt(0, 0))
	assert.Equal(t, g.Bounds(), c.Bounds())
}

func TestRGB24(t *testing.T) {
	s := SampleFromRGB24(0x12345678)
	assert.Equal(t, Sample{0x34, 0x56, 0x78}, s)
	assert.Equal(t, uint32(0x345678), s.RGB24())
}

func TestFromImage(t *testing.T) {
	t.Run("rgba_with_offset", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(10, 20, 13, 22))
		for y := 20; y < 22; y++ {
			for x := 10; x < 13; x++ {
				src.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), uint8(x + y), 0xFF})
			}
		}

		g := FromImage(src)
		assert.Equal(t, image.Rect(0, 0, 3, 2), g.Bounds())
		assert.Equal(t, Sample{10, 20, 30}, g.SampleAt(0, 0))
		assert.Equal(t, Sample{12, 21, 33}, g.SampleAt(2, 1))
	})

	t.Run("nrgba_drops_alpha", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		src.SetNRGBA(0, 0, color.NRGBA{0x81, 0x42, 0x07, 0x10})

		g := FromImage(src)
		assert.Equal(t, Sample{0x81, 0x42, 0x07}, g.SampleAt(0, 0))
	})

	t.Run("grid", func(t *testing.T) {
		src, err := FromSamples(1, 1, []Sample{{3, 4, 5}})
		require.NoError(t, err)

		g := FromImage(src)
		assert.Equal(t, src.Pix, g.Pix)
		g.Set(0, 0, Sample{})
		assert.Equal(t, Sample{3, 4, 5}, src.SampleAt(0, 0))
	})
}

func TestImageInterface(t *testing.T) {
	g, err := FromSamples(1, 1, []Sample{{0xFF, 0x80, 0x01}})
	require.NoError(t, err)

	r, gr, b, a := g.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0x8080), gr)
	assert.Equal(t, uint32(0x0101), b)
	assert.Equal(t, uint32(0xFFFF), a)

	c := color.RGBAModel.Convert(g.At(0, 0)).(color.RGBA)
	assert.Equal(t, color.RGBA{0xFF, 0x80, 0x01, 0xFF}, c)
}
