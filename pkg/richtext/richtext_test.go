package richtext

import (
	"bytes"
	"image/color"
	"testing"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"richtext/pkg/markup"
	"richtext/pkg/style"
)

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	red   = color.RGBA{R: 0xFF, A: 0xFF}
)

func testFaces(t *testing.T) (small, large *text.GoTextFace) {
	t.Helper()
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	require.NoError(t, err)
	return &text.GoTextFace{Source: src, Size: 16},
		&text.GoTextFace{Source: src, Size: 32}
}

func testRegistry(t *testing.T) *style.Registry {
	small, large := testFaces(t)
	return style.NewRegistry(&style.Style{Face: small, Color: white}).
		With("red", &style.Style{Color: red}).
		With("lg", &style.Style{Face: large})
}

func TestResolve(t *testing.T) {
	reg := testRegistry(t)

	sections, err := markup.Compile("Hello [lg,red]World")
	require.NoError(t, err)

	spans := Resolve(sections, reg)
	require.Len(t, spans, 2)

	assert.Equal(t, "Hello ", spans[0].Text)
	assert.Nil(t, spans[0].Tags)
	assert.Equal(t, white, spans[0].Style.Color)

	assert.Equal(t, "World", spans[1].Text)
	assert.Equal(t, []string{"lg", "red"}, spans[1].Tags)
	assert.Equal(t, red, spans[1].Style.Color, "red overrides the default colour")
	assert.Equal(t, 32.0, spans[1].Style.Face.(*text.GoTextFace).Size, "lg overrides the default face")
}

func TestResolveEmpty(t *testing.T) {
	reg := testRegistry(t)

	spans := Resolve(nil, reg)
	require.Len(t, spans, 1)
	assert.Equal(t, "", spans[0].Text)
	assert.Equal(t, white, spans[0].Style.Color, "empty span still carries the default style")
}

func TestSpansFollowRegistry(t *testing.T) {
	reg := testRegistry(t)
	rt := New("[red]hot", reg)

	spans := rt.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, red, spans[0].Style.Color)

	// Same state, same cache.
	assert.Same(t, &spans[0], &rt.Spans()[0])

	blue := color.RGBA{B: 0xFF, A: 0xFF}
	reg.Update("red", func(s *style.Style) { s.Color = blue })

	spans = rt.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, blue, spans[0].Style.Color, "registry edits must re-resolve spans")
}

func TestSetMarkup(t *testing.T) {
	reg := testRegistry(t)
	rt := New("one", reg)
	require.Len(t, rt.Spans(), 1)
	assert.Equal(t, "one", rt.Markup())

	rt.SetMarkup("one[red]two")
	spans := rt.Spans()
	require.Len(t, spans, 2)
	assert.Equal(t, "two", spans[1].Text)
}

func TestErrAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	reg := testRegistry(t)
	rt := New("broken[tag", reg, WithLogger(zerolog.New(&buf)))

	require.Error(t, rt.Err())
	assert.Empty(t, rt.Spans(), "a RichText with bad markup renders nothing")
	assert.Contains(t, buf.String(), "failed to compile markup")

	rt.SetMarkup("[red]fixed")
	require.NoError(t, rt.Err())
	require.Len(t, rt.Spans(), 1)
	assert.Equal(t, "fixed", rt.Spans()[0].Text)
}

func TestBounds(t *testing.T) {
	reg := testRegistry(t)

	one := New("Hello", reg)
	w1, h1 := one.Bounds()
	assert.Greater(t, w1, 0.0)
	assert.Greater(t, h1, 0.0)

	two := New("Hello\nHello", reg)
	_, h2 := two.Bounds()
	assert.Greater(t, h2, h1, "a second line adds height")

	wide := New("Hello Hello", reg)
	w3, _ := wide.Bounds()
	assert.Greater(t, w3, w1, "more text on a line adds width")

	big := New("[lg]Hello", reg)
	_, h4 := big.Bounds()
	assert.Greater(t, h4, h1, "a larger face makes a taller line")
}

func TestBoundsNoFace(t *testing.T) {
	reg := style.NewRegistry(nil)
	rt := New("invisible", reg)

	w, h := rt.Bounds()
	assert.Zero(t, w)
	assert.Zero(t, h)
}
