// A fuller richtext demo: styles loaded from an embedded YAML stylesheet,
// a "rainbow" style animated every frame through its attribute marker, and
// a runtime swap of the default style on the space key.
package main

import (
	"bytes"
	_ "embed"
	"flag"
	"image/color"
	"log"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/goregular"

	"richtext/pkg/richtext"
	"richtext/pkg/style"
)

//go:embed styles.yml
var stylesYAML []byte

type Game struct {
	reg   *style.Registry
	rt    *richtext.RichText
	ticks int
	dim   bool
}

func (g *Game) Update() error {
	g.ticks++

	// Animate every style carrying the "rainbow" marker.
	for _, tag := range g.reg.Tags() {
		s, ok := g.reg.Get(tag)
		if !ok {
			continue
		}
		if _, ok := s.Attr("rainbow"); !ok {
			continue
		}
		hue := math.Mod(float64(g.ticks)*3, 360)
		g.reg.Update(tag, func(s *style.Style) {
			s.Color = hsl(hue, 0.9, 0.7)
		})
	}

	// Space swaps the default colour, restyling every untagged span.
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.dim = !g.dim
		def := g.reg.Default()
		c := color.Color(color.White)
		if g.dim {
			c = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}
		}
		g.reg.SetDefault(&style.Style{Face: def.Face, Color: c})
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.rt.Bounds()
	g.rt.Draw(screen, (800-w)/2, (400-h)/2)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 800, 400
}

// hsl converts an HSL colour to RGBA. Hue is in degrees.
func hsl(h, s, l float64) color.RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 0xFF,
	}
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(level)

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	reg := style.NewRegistry(&style.Style{
		Face:  &text.GoTextFace{Source: src, Size: 24},
		Color: color.White,
	})
	if err := reg.LoadSheet(bytes.NewReader(stylesYAML), src); err != nil {
		log.Fatalf("Failed to load stylesheet: %v", err)
	}

	rt := richtext.New(
		"default[lg,red]red[lg,white]white[lg,blue]blue[lg,rainbow]rainbow[]default\n"+
			"[[escaped brackets]]\n"+
			"Press [rainbow]space[] to change the default style.",
		reg,
		richtext.WithLogger(logger),
	)

	ebiten.SetWindowSize(800, 400)
	ebiten.SetWindowTitle("richtext advanced")
	if err := ebiten.RunGame(&Game{reg: reg, rt: rt}); err != nil {
		log.Fatal(err)
	}
}
