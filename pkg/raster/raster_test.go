package raster_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/raster"
	"github.com/dmitrymomot/sigkit/pkg/render"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

func logoURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(8, 8, color.NRGBA{R: 200, A: 255}), imaging.PNG))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func snapshot(t *testing.T, tmpl signature.Template, mutate func(*signature.Data)) preview.Snapshot {
	t.Helper()
	d := signature.Preset(tmpl)
	if mutate != nil {
		mutate(&d)
	}
	st := signature.DefaultStyle()
	st.Template = tmpl
	s := preview.NewSurface()
	return s.Load(d, st)
}

func decode(t *testing.T, img raster.Image) image.Image {
	t.Helper()
	out, err := png.Decode(bytes.NewReader(img.PNG))
	require.NoError(t, err)
	return out
}

func TestCanvas_NotReady(t *testing.T) {
	t.Parallel()

	img, err := raster.NewCanvas().Rasterize(context.Background(), preview.NewSurface().Snapshot())
	assert.ErrorIs(t, err, raster.ErrNotReady)
	assert.True(t, img.Empty())

	_, _, err = raster.NewCanvas().Measure(preview.Snapshot{})
	assert.ErrorIs(t, err, raster.ErrNotReady)
}

func TestCanvas_TwiceTheMeasuredBox(t *testing.T) {
	t.Parallel()

	for _, tmpl := range signature.Templates() {
		t.Run(string(tmpl), func(t *testing.T) {
			t.Parallel()
			snap := snapshot(t, tmpl, func(d *signature.Data) { d.Logo = logoURI(t) })
			c := raster.NewCanvas()

			w, h, err := c.Measure(snap)
			require.NoError(t, err)
			assert.Equal(t, float64(preview.DefaultWidth), w)
			assert.Greater(t, h, 0.0)

			img, err := c.Rasterize(context.Background(), snap)
			require.NoError(t, err)
			require.False(t, img.Empty())
			assert.Equal(t, 2.0, img.Ratio)
			assert.Equal(t, int(2*w), img.Width)
			assert.Equal(t, int(2*h), img.Height)

			bounds := decode(t, img).Bounds()
			assert.Equal(t, img.Width, bounds.Dx())
			assert.Equal(t, img.Height, bounds.Dy())
		})
	}
}

func TestCanvas_Opaque(t *testing.T) {
	t.Parallel()

	img, err := raster.NewCanvas().Rasterize(context.Background(), snapshot(t, signature.Creative, nil))
	require.NoError(t, err)
	out := decode(t, img)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 7 {
		for x := b.Min.X; x < b.Max.X; x += 7 {
			_, _, _, a := out.At(x, y).RGBA()
			require.Equal(t, uint32(0xffff), a, "pixel %d,%d", x, y)
		}
	}
}

func TestCanvas_PaintsBackground(t *testing.T) {
	t.Parallel()

	// tech paints a black rounded card on a white backdrop
	img, err := raster.NewCanvas().Rasterize(context.Background(), snapshot(t, signature.Tech, nil))
	require.NoError(t, err)
	out := decode(t, img)

	r, g, b, _ := out.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})

	r, g, b, _ = out.At(img.Width-40, img.Height-40).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r, g, b})
}

func TestCanvas_PixelRatio(t *testing.T) {
	t.Parallel()

	snap := snapshot(t, signature.Minimal, nil)
	c := raster.NewCanvas(raster.WithPixelRatio(1))
	w, h, err := c.Measure(snap)
	require.NoError(t, err)
	img, err := c.Rasterize(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, int(w), img.Width)
	assert.Equal(t, int(h), img.Height)
}

func TestCanvas_MaxHeight(t *testing.T) {
	t.Parallel()

	long := snapshot(t, signature.Elegant, func(d *signature.Data) {
		d.Location = strings.Repeat("word ", 4000)
	})
	_, h, err := raster.NewCanvas().Measure(long)
	require.NoError(t, err)
	require.Greater(t, 2*h, float64(raster.DefaultMaxHeight))

	img, err := raster.NewCanvas().Rasterize(context.Background(), long)
	assert.ErrorIs(t, err, raster.ErrBoxTooLarge)
	assert.True(t, img.Empty())

	short := snapshot(t, signature.Elegant, nil)
	_, h, err = raster.NewCanvas().Measure(short)
	require.NoError(t, err)

	_, err = raster.NewCanvas(raster.WithMaxHeight(int(h))).Rasterize(context.Background(), short)
	assert.ErrorIs(t, err, raster.ErrBoxTooLarge, "the cap counts device pixels")

	img, err = raster.NewCanvas(raster.WithMaxHeight(int(2*h)+1)).Rasterize(context.Background(), short)
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Height, int(2*h)+1)
}

func TestCanvas_IgnoresDragState(t *testing.T) {
	t.Parallel()

	d, st := signature.Default()
	s := preview.NewSurface()
	s.Load(d, st)
	c := raster.NewCanvas()

	before, err := c.Rasterize(context.Background(), s.Snapshot())
	require.NoError(t, err)
	require.NoError(t, s.Drag(render.SectionContact, 30, 40))
	after, err := c.Rasterize(context.Background(), s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, before.PNG, after.PNG)
}

func TestCanvas_ImageSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		logo string
		err  error
	}{
		{name: "remote", logo: "https://cdn.example.com/logo.png", err: raster.ErrTaintedImage},
		{name: "relative", logo: "/uploads/logo.png", err: raster.ErrTaintedImage},
		{name: "garbage", logo: "data:image/png;base64,AAAA", err: raster.ErrUndecodableImage},
		{name: "bad base64", logo: "data:image/png;base64,%%%", err: raster.ErrUndecodableImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			snap := snapshot(t, signature.Elegant, func(d *signature.Data) { d.Logo = tt.logo })
			img, err := raster.NewCanvas().Rasterize(context.Background(), snap)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, img.Empty())
			assert.ErrorIs(t, raster.CheckImages(snap.Tree), tt.err)
		})
	}

	assert.NoError(t, raster.CheckImages(snapshot(t, signature.Elegant, func(d *signature.Data) { d.Logo = logoURI(t) }).Tree))
}

func TestCanvas_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := raster.NewCanvas().Rasterize(ctx, snapshot(t, signature.Tech, nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCanvas_Deterministic(t *testing.T) {
	t.Parallel()

	snap := snapshot(t, signature.Modern, nil)
	a, err := raster.NewCanvas().Rasterize(context.Background(), snap)
	require.NoError(t, err)
	b, err := raster.NewCanvas().Rasterize(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, a.PNG, b.PNG)
}
