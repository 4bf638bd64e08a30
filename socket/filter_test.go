package socket

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/world"
	"github.com/stretchr/testify/assert"
)

func TestTagFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		tag    string
		want   bool
	}{
		{name: "exact", filter: "magazine", tag: "magazine", want: true},
		{name: "case insensitive", filter: "Magazine", tag: "MAGAZINE", want: true},
		{name: "different", filter: "magazine", tag: "knife", want: false},
		{name: "empty filter tag", filter: "", tag: "magazine", want: false},
		{name: "empty socketable tag", filter: "magazine", tag: "", want: false},
		{name: "both empty", filter: "", tag: "", want: false},
		{name: "blank", filter: "  ", tag: "  ", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewSocketable(world.HandleOf("x"), tt.tag)
			assert.Equal(t, tt.want, TagFilter{Tag: tt.filter}.IsValid(sc))
		})
	}
	assert.False(t, TagFilter{Tag: "magazine"}.IsValid(nil))
}

func TestHandleFilter(t *testing.T) {
	allowed := world.HandleOf("key")
	f := HandleFilter{Allowed: []world.Handle{allowed}}

	assert.True(t, f.IsValid(NewSocketable(allowed, "")))
	assert.False(t, f.IsValid(NewSocketable(world.HandleOf("lockpick"), "")))
	assert.False(t, f.IsValid(NewSocketable(world.Nil, "")))
	assert.False(t, f.IsValid(nil))
}

func TestBoundsFilter(t *testing.T) {
	f := BoundsFilter{MaxSize: mgl32.Vec3{0.1, 0.3, 0.1}}
	sc := NewSocketable(world.HandleOf("mag"), "")
	assert.False(t, f.IsValid(sc), "socketables without bounds are rejected")

	small := cube.Box(0, 0, 0, 0.05, 0.2, 0.05)
	sc.Bounds = &small
	assert.True(t, f.IsValid(sc))

	large := cube.Box(0, 0, 0, 0.05, 0.5, 0.05)
	sc.Bounds = &large
	assert.False(t, f.IsValid(sc))
	assert.False(t, f.IsValid(nil))
}

func TestFilterFuncNeverSeesNil(t *testing.T) {
	called := false
	f := FilterFunc(func(*Socketable) bool {
		called = true
		return true
	})
	assert.False(t, f.IsValid(nil))
	assert.False(t, called)
	assert.True(t, f.IsValid(NewSocketable(world.HandleOf("a"), "")))
}

func TestFiltersAreCombinedWithAnd(t *testing.T) {
	w := world.New(nil)
	mag := newItem(t, w, "mag", "magazine")
	s := newSocket(t, w, "pouch", nil, TagFilter{Tag: "magazine"}, HandleFilter{Allowed: []world.Handle{world.HandleOf("other")}})
	assert.False(t, s.IsValid(mag))

	open := newSocket(t, w, "open", nil)
	assert.True(t, open.IsValid(mag), "a socket without filters accepts any socketable")
}
