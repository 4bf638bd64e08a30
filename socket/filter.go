package socket

import (
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/world"
)

// Filter decides whether a socketable may enter a socket. Implementations must be pure: the same
// socketable always yields the same answer, and a nil socketable or one missing whatever the filter
// inspects is always rejected.
type Filter interface {
	IsValid(s *Socketable) bool
}

// FilterFunc adapts an ordinary function to a Filter. The function is never called with nil.
type FilterFunc func(s *Socketable) bool

func (f FilterFunc) IsValid(s *Socketable) bool {
	return s != nil && f(s)
}

// TagFilter accepts socketables carrying the same tag, compared case-insensitively. An empty tag on
// either side never matches.
type TagFilter struct {
	Tag string
}

func (f TagFilter) IsValid(s *Socketable) bool {
	if s == nil {
		return false
	}
	want, have := strings.TrimSpace(f.Tag), strings.TrimSpace(s.Tag)
	if want == "" || have == "" {
		return false
	}
	return strings.EqualFold(want, have)
}

// HandleFilter accepts only socketables belonging to one of the grabbables listed.
type HandleFilter struct {
	Allowed []world.Handle
}

func (f HandleFilter) IsValid(s *Socketable) bool {
	if s == nil || s.Grabbable == world.Nil {
		return false
	}
	return slices.Contains(f.Allowed, s.Grabbable)
}

// BoundsFilter accepts socketables whose bounds fit within MaxSize on every axis. Socketables
// without a bounds override are rejected.
type BoundsFilter struct {
	MaxSize mgl32.Vec3
}

func (f BoundsFilter) IsValid(s *Socketable) bool {
	if s == nil {
		return false
	}
	size, ok := s.Size()
	if !ok {
		return false
	}
	return size[0] <= f.MaxSize[0] && size[1] <= f.MaxSize[1] && size[2] <= f.MaxSize[2]
}
