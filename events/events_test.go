package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct{ got []string }

func (r *recordingHandler) HandleEvent(e *Event) { r.got = append(r.got, e.Type) }

func TestAsHandler(t *testing.T) {
	var calls int
	rec := &recordingHandler{}
	once := Options{Once: true}

	tests := []struct {
		name     string
		value    any
		wantOK   bool
		wantOpts Options
	}{
		{"no-arg func", func() { calls++ }, true, Options{}},
		{"event func", func(*Event) { calls++ }, true, Options{}},
		{"handler func", HandlerFunc(func(*Event) { calls++ }), true, Options{}},
		{"listener", On(func(*Event) { calls++ }, once), true, once},
		{"listener pointer", &Listener{Handler: HandlerFunc(func(*Event) { calls++ }), Options: once}, true, once},
		{"handler", rec, true, Options{}},
		{"nil", nil, false, Options{}},
		{"nil func", (func())(nil), false, Options{}},
		{"nil listener pointer", (*Listener)(nil), false, Options{}},
		{"empty listener", Listener{}, false, Options{}},
		{"typed nil handler", (*recordingHandler)(nil), false, Options{}},
		{"listener with typed nil handler", Listener{Handler: (*recordingHandler)(nil)}, false, Options{}},
		{"nil handler func", HandlerFunc(nil), false, Options{}},
		{"string", "alert(1)", false, Options{}},
		{"int", 42, false, Options{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, opts, ok := AsHandler(tt.value)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Nil(t, h)
				return
			}
			assert.Equal(t, tt.wantOpts, opts)
			h.HandleEvent(New("click", nil))
		})
	}
	assert.Equal(t, 5, calls)
	assert.Equal(t, []string{"click"}, rec.got)
}

func TestEventFlags(t *testing.T) {
	e := New("submit", map[string]any{"id": 1})
	assert.False(t, e.Stopped())
	assert.False(t, e.DefaultPrevented())

	e.PreventDefault()
	e.StopPropagation()
	assert.True(t, e.Stopped())
	assert.True(t, e.DefaultPrevented())
	assert.Equal(t, map[string]any{"id": 1}, e.Detail)
}
