// Package style maps markup tag names to style definitions and merges them
// into the effective style for a text span. A Registry always holds a
// default style under the empty tag name; tags that were never registered
// fall back to it.
package style

import (
	"image/color"
	"sort"
	"sync"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// DefaultTag is the registry key of the default style. It is what text
// outside any directive (and any unknown tag) resolves to.
const DefaultTag = ""

// Style is a bundle of display attributes. A nil Face or Color means the
// style does not set that attribute and leaves whatever an earlier style in
// the merge chain chose. Attrs carries arbitrary caller-defined markers
// (for example an animation flag a game system looks for); it is merged
// key-wise, later styles winning.
type Style struct {
	Face  text.Face
	Color color.Color
	Attrs map[string]any
}

// overlay copies every attribute src sets onto s.
func (s *Style) overlay(src *Style) {
	if src == nil {
		return
	}
	if src.Face != nil {
		s.Face = src.Face
	}
	if src.Color != nil {
		s.Color = src.Color
	}
	for k, v := range src.Attrs {
		if s.Attrs == nil {
			s.Attrs = make(map[string]any, len(src.Attrs))
		}
		s.Attrs[k] = v
	}
}

// Attr returns the named attribute from the style's marker bag.
func (s *Style) Attr(key string) (any, bool) {
	v, ok := s.Attrs[key]
	return v, ok
}

// Registry maps tag names to styles. All methods are safe for concurrent
// use. Every mutation bumps an internal generation counter so that callers
// holding resolved spans can notice the registry moved under them and
// re-resolve.
type Registry struct {
	mu     sync.RWMutex
	styles map[string]*Style
	gen    uint64
}

// NewRegistry returns a Registry whose default style is def. A nil def
// installs an empty default, which renders nothing until a face is set.
func NewRegistry(def *Style) *Registry {
	if def == nil {
		def = &Style{}
	}
	return &Registry{styles: map[string]*Style{DefaultTag: def}}
}

// Register adds or replaces the style for tag.
func (r *Registry) Register(tag string, s *Style) {
	if s == nil {
		s = &Style{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[tag] = s
	r.gen++
}

// With is Register returning the receiver, for chained setup.
func (r *Registry) With(tag string, s *Style) *Registry {
	r.Register(tag, s)
	return r
}

// Deregister removes the style for tag. The default style cannot be
// removed; deregistering DefaultTag is a no-op.
func (r *Registry) Deregister(tag string) {
	if tag == DefaultTag {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.styles[tag]; !ok {
		return
	}
	delete(r.styles, tag)
	r.gen++
}

// Get returns the style registered for tag.
func (r *Registry) Get(tag string) (*Style, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.styles[tag]
	return s, ok
}

// GetOrDefault returns the style for tag, or the default style when tag was
// never registered.
func (r *Registry) GetOrDefault(tag string) *Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.styles[tag]; ok {
		return s
	}
	return r.styles[DefaultTag]
}

// Default returns the default style.
func (r *Registry) Default() *Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.styles[DefaultTag]
}

// SetDefault replaces the default style.
func (r *Registry) SetDefault(s *Style) {
	if s == nil {
		s = &Style{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[DefaultTag] = s
	r.gen++
}

// Update runs fn on the style for tag while holding the registry lock and
// bumps the generation, so in-place edits (an animated colour, say) are
// picked up by renderers. It reports whether the tag was registered.
func (r *Registry) Update(tag string, fn func(*Style)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.styles[tag]
	if !ok {
		return false
	}
	fn(s)
	r.gen++
	return true
}

// Tags returns the registered tag names in sorted order, including
// DefaultTag.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.styles))
	for tag := range r.styles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Generation returns the current mutation count. Any successful Register,
// Deregister, SetDefault, Update or LoadSheet call changes it.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

// Merged returns the effective style for a span carrying the given tags:
// the default style overlaid with each named style in tag order. Later tags
// win attribute-by-attribute. Unknown tags contribute nothing. The result
// is a copy; mutating it does not touch registered styles.
func (r *Registry) Merged(tags []string) Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out Style
	out.overlay(r.styles[DefaultTag])
	for _, tag := range tags {
		if s, ok := r.styles[tag]; ok {
			out.overlay(s)
		}
	}
	return out
}
