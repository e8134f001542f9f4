// World-space placement: the same RichText drawn through a GeoM transform,
// slowly orbiting the screen centre.
package main

import (
	"bytes"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"richtext/pkg/richtext"
	"richtext/pkg/style"
)

type Game struct {
	rt    *richtext.RichText
	ticks int
}

func (g *Game) Update() error {
	g.ticks++
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.rt.Bounds()
	angle := float64(g.ticks) / 120

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(angle / 4)
	op.GeoM.Translate(
		320+120*math.Cos(angle),
		240+120*math.Sin(angle),
	)
	g.rt.DrawWithOptions(screen, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 640, 480
}

func main() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	reg := style.NewRegistry(&style.Style{
		Face:  &text.GoTextFace{Source: src, Size: 20},
		Color: color.White,
	}).
		With("lg", &style.Style{Face: &text.GoTextFace{Source: src, Size: 40}})

	ebiten.SetWindowSize(640, 480)
	ebiten.SetWindowTitle("richtext text2d")
	game := &Game{rt: richtext.New("[lg]Hello", reg)}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
