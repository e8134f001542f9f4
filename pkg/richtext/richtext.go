// Package richtext turns bracket-tag markup into drawable, styled text
// spans for ebiten. A RichText pairs a markup string with a style.Registry
// and keeps its resolved spans cached until either side changes.
package richtext

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"

	"richtext/pkg/markup"
	"richtext/pkg/style"
)

// Span is a run of text with its fully resolved style: the registry's
// default overlaid with each of the span's tags in order.
type Span struct {
	Text  string
	Tags  []string
	Style style.Style
}

// Resolve merges each compiled section against the registry. Empty input
// yields a single empty default-styled span, so a renderer always has a
// style to measure with.
func Resolve(sections []markup.Section, reg *style.Registry) []Span {
	if len(sections) == 0 {
		return []Span{{Style: reg.Merged(nil)}}
	}
	spans := make([]Span, 0, len(sections))
	for _, sec := range sections {
		spans = append(spans, Span{
			Text:  sec.Text,
			Tags:  sec.Tags,
			Style: reg.Merged(sec.Tags),
		})
	}
	return spans
}

// RichText is a retained rich text object. It recompiles its markup lazily
// whenever the markup string is replaced or the registry's generation
// moves, so registry edits (an animated style, a swapped default) show up
// on the next Draw without any bookkeeping by the caller.
//
// A RichText is not safe for concurrent use; the registry it points at is.
type RichText struct {
	reg *style.Registry
	log zerolog.Logger

	markup   string
	spans    []Span
	lines    []line
	err      error
	gen      uint64
	resolved bool
}

// Option configures a RichText.
type Option func(*RichText)

// WithLogger sets the logger used to report markup problems. The default
// logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(rt *RichText) {
		rt.log = log.With().Str("component", "richtext").Logger()
	}
}

// New creates a RichText for the given markup, styled by reg.
func New(src string, reg *style.Registry, opts ...Option) *RichText {
	rt := &RichText{
		reg:    reg,
		log:    zerolog.Nop(),
		markup: src,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Markup returns the current markup string.
func (rt *RichText) Markup() string {
	return rt.markup
}

// SetMarkup replaces the markup string. The new text is compiled on the
// next Spans, Draw or Bounds call.
func (rt *RichText) SetMarkup(src string) {
	if src == rt.markup && rt.resolved {
		return
	}
	rt.markup = src
	rt.resolved = false
}

// Err returns the compile error for the current markup, if any. A RichText
// with a pending error draws nothing.
func (rt *RichText) Err() error {
	rt.refresh()
	return rt.err
}

// Spans returns the resolved spans for the current markup and registry
// state. The returned slice is owned by the RichText; treat it as
// read-only.
func (rt *RichText) Spans() []Span {
	rt.refresh()
	return rt.spans
}

func (rt *RichText) refresh() {
	gen := rt.reg.Generation()
	if rt.resolved && gen == rt.gen {
		return
	}
	rt.gen = gen
	rt.resolved = true

	sections, err := markup.Compile(rt.markup)
	if err != nil {
		rt.err = err
		rt.spans = nil
		rt.lines = nil
		rt.log.Error().Err(err).Str("markup", rt.markup).Msg("failed to compile markup")
		return
	}

	rt.err = nil
	rt.spans = Resolve(sections, rt.reg)
	rt.lines = layoutLines(rt.spans)

	for _, sp := range rt.spans {
		if sp.Style.Face == nil && sp.Text != "" {
			rt.log.Warn().Strs("tags", sp.Tags).Msg("span has no face and will not be drawn")
		}
	}
}

// piece is the drawable part of a span on a single line.
type piece struct {
	text   string
	face   text.Face
	col    color.Color // nil leaves the face's natural white
	ascent float64
	width  float64
}

// line is a baseline-aligned row of pieces.
type line struct {
	pieces []piece
	ascent float64
	height float64
	width  float64
}

// layoutLines splits spans at newlines and groups the parts into lines,
// tracking per-line ascent and height so mixed-size faces share a
// baseline. Spans without a face still stretch the line they start on but
// contribute no pieces.
func layoutLines(spans []Span) []line {
	lines := []line{{}}
	for _, sp := range spans {
		face := sp.Style.Face
		for i, part := range strings.Split(sp.Text, "\n") {
			if i > 0 {
				lines = append(lines, line{})
			}
			if face == nil {
				continue
			}
			ln := &lines[len(lines)-1]

			m := face.Metrics()
			if m.HAscent > ln.ascent {
				ln.ascent = m.HAscent
			}
			if h := m.HAscent + m.HDescent + m.HLineGap; h > ln.height {
				ln.height = h
			}

			if part == "" {
				continue
			}
			w := text.Advance(part, face)
			ln.pieces = append(ln.pieces, piece{
				text:   part,
				face:   face,
				col:    sp.Style.Color,
				ascent: m.HAscent,
				width:  w,
			})
			ln.width += w
		}
	}
	return lines
}

// Draw renders the text onto dst with the top-left corner of the block at
// (x, y).
func (rt *RichText) Draw(dst *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	rt.DrawWithOptions(dst, op)
}

// DrawWithOptions renders the text onto dst, applying base's geometry and
// colour scale on top of the block's own layout. This is the hook for
// world-space placement: rotate, scale and translate through base.GeoM.
func (rt *RichText) DrawWithOptions(dst *ebiten.Image, base *ebiten.DrawImageOptions) {
	rt.refresh()

	var y float64
	for _, ln := range rt.lines {
		var x float64
		for _, pc := range ln.pieces {
			op := &text.DrawOptions{}
			op.GeoM.Translate(x, y+ln.ascent-pc.ascent)
			op.GeoM.Concat(base.GeoM)
			if pc.col != nil {
				op.ColorScale.ScaleWithColor(pc.col)
			}
			op.ColorScale.ScaleWithColorScale(base.ColorScale)
			text.Draw(dst, pc.text, pc.face, op)
			x += pc.width
		}
		y += ln.height
	}
}

// Bounds returns the width and height of the laid-out text block before
// any DrawWithOptions transform.
func (rt *RichText) Bounds() (w, h float64) {
	rt.refresh()
	for _, ln := range rt.lines {
		if ln.width > w {
			w = ln.width
		}
		h += ln.height
	}
	return w, h
}
