// Package markup compiles a bracket-tag markup syntax into styled text
// sections. The syntax is a flat stream of text and directives: a directive
// like "[bold,red]" names the tags that apply to all text after it, until
// the next directive replaces them. "[]" clears the tags. Doubled brackets
// ("[[", "]]") are literal brackets; a stray "]" is literal as-is.
//
// The compiler knows nothing about what a tag means. Mapping tag names to
// styles is the caller's business (see package style).
package markup

import (
	"fmt"
	"strings"
)

// Section is a run of literal text together with the tags active for it.
// Tags preserve the order they appeared in the directive; a nil Tags means
// no directive applies (or the last directive was "[]").
type Section struct {
	Text string
	Tags []string
}

// SyntaxError reports a directive that was opened but never closed.
// Offset is the byte offset of the opening '[' in the input.
type SyntaxError struct {
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("markup: unterminated directive at byte %d", e.Offset)
}

// scanner holds the state for a single pass over src. Directive delimiters
// are all ASCII, so scanning byte-wise is safe; text bytes are copied
// through untouched, which keeps multi-byte runes intact.
type scanner struct {
	src string
	pos int // index of the next byte to consume
}

// peek returns the byte at the current position without advancing.
func (s *scanner) peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

// peek2 returns the byte one position ahead of the current position.
func (s *scanner) peek2() byte {
	if s.pos+1 >= len(s.src) {
		return 0
	}
	return s.src[s.pos+1]
}

// advance consumes one byte and returns it.
func (s *scanner) advance() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	b := s.src[s.pos]
	s.pos++
	return b
}

// Compile scans input left to right and returns its text content split into
// Sections at directive boundaries. The concatenated Section texts equal the
// input with every directive removed and escaped brackets collapsed.
// Runs of text between consecutive directives are never empty, so an input
// with no text at all compiles to an empty slice.
//
// Compile is a pure function and is safe to call from multiple goroutines.
func Compile(input string) ([]Section, error) {
	var sections []Section
	var active []string
	var buf strings.Builder
	s := &scanner{src: input}

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		sections = append(sections, Section{Text: buf.String(), Tags: active})
		buf.Reset()
	}

	for s.pos < len(s.src) {
		switch s.peek() {
		case '[':
			if s.peek2() == '[' {
				s.advance()
				s.advance()
				buf.WriteByte('[')
				continue
			}
			open := s.pos
			s.advance() // '['
			start := s.pos
			for s.pos < len(s.src) && s.peek() != ']' {
				s.advance()
			}
			if s.pos >= len(s.src) {
				return nil, &SyntaxError{Offset: open}
			}
			raw := s.src[start:s.pos]
			s.advance() // ']'
			flush()
			active = splitTags(raw)
		case ']':
			// "]]" collapses to one bracket; a lone "]" is already literal.
			if s.peek2() == ']' {
				s.advance()
			}
			s.advance()
			buf.WriteByte(']')
		default:
			buf.WriteByte(s.advance())
		}
	}

	flush()
	return sections, nil
}

// MustCompile is like Compile but panics on malformed input. It simplifies
// compiling known-good literals in variable initializers.
func MustCompile(input string) []Section {
	sections, err := Compile(input)
	if err != nil {
		panic(err)
	}
	return sections
}

// splitTags parses the inside of a directive. Names are trimmed of
// surrounding whitespace and empty names are dropped, so "[]", "[ ]" and
// "[,]" all clear the active set.
func splitTags(raw string) []string {
	var tags []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tags = append(tags, name)
	}
	return tags
}
