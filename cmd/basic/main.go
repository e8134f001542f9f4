// A minimal richtext demo: register a couple of styles, hand a markup
// string to a RichText, draw it every frame.
package main

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"richtext/pkg/richtext"
	"richtext/pkg/style"
)

type Game struct {
	rt *richtext.RichText
}

func (g *Game) Update() error {
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.rt.Draw(screen, 40, 60)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 640, 360
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
		With("lg", &style.Style{Face: &text.GoTextFace{Source: src, Size: 40}}).
		With("red", &style.Style{Color: color.RGBA{R: 0xE8, G: 0x5D, B: 0x5D, A: 0xFF}}).
		With("blue", &style.Style{Color: color.RGBA{R: 0x5D, G: 0x5D, B: 0xE8, A: 0xFF}})

	rt := richtext.New(
		"default[lg,red]red[lg,blue]blue[]default\n[[escaped brackets]]\n[lg]Hello [lg,red]World",
		reg,
	)

	ebiten.SetWindowSize(640, 360)
	ebiten.SetWindowTitle("richtext basic")
	if err := ebiten.RunGame(&Game{rt: rt}); err != nil {
		log.Fatal(err)
	}
}
