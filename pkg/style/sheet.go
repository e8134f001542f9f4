package style

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"gopkg.in/yaml.v3"
)

// sheetEntry is one tag definition in a YAML stylesheet.
type sheetEntry struct {
	Color string         `yaml:"color"`
	Size  float64        `yaml:"size"`
	Attrs map[string]any `yaml:"attrs"`
}

type sheetFile struct {
	Styles map[string]sheetEntry `yaml:"styles"`
}

// LoadSheet parses a YAML stylesheet into styles ready for registration:
//
//	styles:
//	  red:   {color: "#e85d5d"}
//	  lg:    {size: 40}
//	  alert: {color: ff0000aa, attrs: {blink: true}}
//
// A "size" entry builds a face of that size from src; a sheet that sets
// sizes therefore needs a non-nil src. Sheets cannot reference font files,
// faces are a code-level concern.
func LoadSheet(r io.Reader, src *text.GoTextFaceSource) (map[string]*Style, error) {
	var sheet sheetFile
	if err := yaml.NewDecoder(r).Decode(&sheet); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("stylesheet: %w", err)
	}

	styles := make(map[string]*Style, len(sheet.Styles))
	for tag, entry := range sheet.Styles {
		s := &Style{Attrs: entry.Attrs}
		if entry.Color != "" {
			col, err := ParseColor(entry.Color)
			if err != nil {
				return nil, fmt.Errorf("stylesheet: tag %q: %w", tag, err)
			}
			s.Color = col
		}
		if entry.Size > 0 {
			if src == nil {
				return nil, fmt.Errorf("stylesheet: tag %q sets size but no face source was given", tag)
			}
			s.Face = &text.GoTextFace{Source: src, Size: entry.Size}
		}
		styles[tag] = s
	}
	return styles, nil
}

// LoadSheet reads a YAML stylesheet and registers every entry, replacing
// any styles already registered under the same tags.
func (r *Registry) LoadSheet(rd io.Reader, src *text.GoTextFaceSource) error {
	styles, err := LoadSheet(rd, src)
	if err != nil {
		return err
	}
	for tag, s := range styles {
		r.Register(tag, s)
	}
	return nil
}

// ParseColor converts an "RRGGBB" or "RRGGBBAA" hex colour, with or without
// a leading '#', to a color.RGBA. Six-digit colours are fully opaque.
func ParseColor(in string) (color.RGBA, error) {
	s := strings.TrimPrefix(in, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q: want 6 or 8 hex digits", in)
	}

	var channels [4]uint8
	channels[3] = 0xFF
	for i := 0; i*2 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("colour %q: %w", in, err)
		}
		channels[i] = uint8(v)
	}
	return color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}
