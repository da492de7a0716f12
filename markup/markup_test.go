package markup

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/dom"
	"github.com/vcrobe/nojs-html/events"
)

// newTestEngine returns an engine with deterministic ids (tag "t1") and a
// slice collecting every reported error.
func newTestEngine(t *testing.T) (*Engine, *[]error) {
	t.Helper()
	var reported []error
	eng := NewEngine(
		WithIDGenerator(NewSequenceGenerator("t")),
		WithLogger(console.New(console.LevelSilent)),
		WithErrorHandler(func(err error) { reported = append(reported, err) }),
	)
	return eng, &reported
}

func newTarget(t *testing.T) *dom.Node {
	t.Helper()
	doc := dom.NewDocument()
	div := doc.CreateElement("div")
	doc.Body().AppendChild(div)
	return div
}

func TestHTML_PlainConcatenation(t *testing.T) {
	eng, reported := newTestEngine(t)

	out := eng.HTML([]string{"<p>", " of ", "</p>"}, 3, "seven")

	assert.Equal(t, "<!-- tmpl-t1-t2 --><p>3 of seven</p>", out)
	assert.Equal(t, 1, strings.Count(out, "<!-- tmpl-"))
	assert.Equal(t, 0, eng.Pending())
	assert.Empty(t, *reported)
}

func TestHTML_MarkerIsUniquePerCall(t *testing.T) {
	eng := NewEngine(WithLogger(console.New(console.LevelSilent)))

	a := eng.HTML([]string{"<p>x</p>"})
	b := eng.HTML([]string{"<p>x</p>"})

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "<!-- tmpl-"+eng.Tag()+"-"))
	assert.True(t, strings.HasSuffix(a, " --><p>x</p>"))
}

func TestHTML_NilAndListValues(t *testing.T) {
	eng, _ := newTestEngine(t)

	out := eng.HTML([]string{"<ul>", "", "</ul>"}, []string{"<li>a</li>", "<li>b</li>"}, nil)

	assert.Equal(t, "<!-- tmpl-t1-t2 --><ul><li>a</li><li>b</li></ul>", out)
}

func TestHTML_ConditionalAttribute(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"true", true, `<!-- tmpl-t1-t2 --><input disabled>`},
		{"non-empty string", "yes", `<!-- tmpl-t1-t2 --><input disabled>`},
		{"non-zero number", 2, `<!-- tmpl-t1-t2 --><input disabled>`},
		{"false", false, `<!-- tmpl-t1-t2 --><input >`},
		{"zero", 0, `<!-- tmpl-t1-t2 --><input >`},
		{"empty string", "", `<!-- tmpl-t1-t2 --><input >`},
		{"nil", nil, `<!-- tmpl-t1-t2 --><input >`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, reported := newTestEngine(t)
			out := eng.HTML([]string{"<input ?disabled=", ">"}, tt.value)
			assert.Equal(t, tt.want, out)
			assert.NotContains(t, out, "?disabled")
			assert.Empty(t, *reported)
		})
	}
}

func TestHTML_QueryStringIsNotADirective(t *testing.T) {
	eng, _ := newTestEngine(t)

	out := eng.HTML([]string{`<a href="/search?q=`, `">go</a>`}, "wasm")

	assert.Equal(t, `<!-- tmpl-t1-t2 --><a href="/search?q=wasm">go</a>`, out)
}

func TestHTML_EventDirectiveGolden(t *testing.T) {
	eng, reported := newTestEngine(t)

	out := eng.HTML(
		[]string{`<button class="`, `" ?disabled=`, ` @click=`, `>`, `</button>`},
		"primary", true, events.HandlerFunc(func(*events.Event) {}), "Save",
	)

	g := goldie.New(t)
	g.Assert(t, "button", []byte(out))
	assert.Equal(t, 1, eng.Pending())
	assert.Empty(t, *reported)
}

func TestHTML_InvalidHandler(t *testing.T) {
	eng, reported := newTestEngine(t)

	out := eng.HTML([]string{"<button @click=", ">Go</button>"}, "not a handler")

	assert.Equal(t, "<!-- tmpl-t1-t2 --><button >Go</button>", out)
	assert.Equal(t, 0, eng.Pending())
	require.Len(t, *reported, 1)
	assert.True(t, errors.Is((*reported)[0], ErrInvalidHandler))
	assert.True(t, IsKind((*reported)[0], KindDirective))
}

func TestHTML_NilHandlerInsideListener(t *testing.T) {
	eng, reported := newTestEngine(t)

	out := eng.HTML([]string{"<button @click=", ">Go</button>"},
		events.Listener{Handler: events.HandlerFunc(nil)})

	assert.Equal(t, "<!-- tmpl-t1-t2 --><button >Go</button>", out)
	assert.Equal(t, 0, eng.Pending())
	require.Len(t, *reported, 1)
	assert.True(t, IsKind((*reported)[0], KindDirective))
}

func TestHTML_FloatValues(t *testing.T) {
	eng, _ := newTestEngine(t)

	out := eng.HTML([]string{"<p>", " ", "</p>"}, float64(1234567), 2.5)

	assert.Equal(t, "<!-- tmpl-t1-t2 --><p>1234567 2.5</p>", out)
}

func TestHTML_ValueCountMismatch(t *testing.T) {
	eng, reported := newTestEngine(t)

	out := eng.HTML([]string{"<p>", "</p>"})

	assert.Equal(t, "<!-- tmpl-t1-t2 --><p></p>", out)
	require.Len(t, *reported, 1)
	assert.True(t, errors.Is((*reported)[0], ErrValueCount))
}

func TestRender_AttachesListeners(t *testing.T) {
	eng, reported := newTestEngine(t)
	target := newTarget(t)

	clicks := 0
	out := eng.HTML([]string{`<button @click=`, `>+</button><input @input=`, `>`},
		func() { clicks++ },
		events.On(func(*events.Event) {}, events.Options{Once: true}),
	)
	require.Equal(t, 1, eng.Pending())

	attached := eng.Render(target, out)

	assert.Equal(t, 2, attached)
	assert.Equal(t, 0, eng.Pending())
	assert.Equal(t, 2, dom.CountListeners(target))
	assert.Empty(t, *reported)

	button := target.QueryAll("button")[0]
	assert.Equal(t, 1, button.Dispatch(events.New("click", nil)))
	assert.Equal(t, 1, button.Dispatch(events.New("click", nil)))
	assert.Equal(t, 2, clicks)

	input := target.QueryAll("input")[0]
	assert.Equal(t, 1, input.Dispatch(events.New("input", nil)))
	assert.Equal(t, 0, input.Dispatch(events.New("input", nil)), "once listener must be removed")
}

func TestRender_SerializedContent(t *testing.T) {
	eng, _ := newTestEngine(t)
	target := newTarget(t)

	out := eng.HTML(
		[]string{`<button class="`, `" ?disabled=`, ` @click=`, `>`, `</button>`},
		"primary", true, func() {}, "Save",
	)
	eng.Render(target, out)

	assert.Equal(t, `<!-- tmpl-t1-t2 --><button class="primary" disabled="" data-el-t3="">Save</button>`, target.InnerHTML())
}

func TestRender_PartialFailure(t *testing.T) {
	eng, reported := newTestEngine(t)
	target := newTarget(t)

	out := eng.HTML([]string{`<button id="a" @click=`, `>a</button><button id="b" @click=`, `>b</button>`},
		func() {}, func() {})
	// Selectors are t3 and t4; break the second one.
	broken := strings.Replace(out, "data-el-t4", "data-gone", 1)

	attached := eng.Render(target, broken)

	assert.Equal(t, 1, attached)
	assert.Equal(t, 0, eng.Pending())
	require.Len(t, *reported, 1)
	assert.True(t, errors.Is((*reported)[0], ErrElementNotFound))
	assert.True(t, IsKind((*reported)[0], KindBinding))
}

func TestRender_NilTarget(t *testing.T) {
	tests := []struct {
		name   string
		target dom.Element
	}{
		{"nil interface", nil},
		{"nil node", (*dom.Node)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, reported := newTestEngine(t)
			out := eng.HTML([]string{`<button @click=`, `>x</button>`}, func() {})

			assert.NotPanics(t, func() {
				assert.Equal(t, 0, eng.Render(tt.target, out))
			})
			assert.Equal(t, 0, eng.Pending())
			require.Len(t, *reported, 1)
			assert.True(t, errors.Is((*reported)[0], ErrNilTarget))
		})
	}
}

func TestRender_MissingMarker(t *testing.T) {
	eng, reported := newTestEngine(t)
	target := newTarget(t)

	assert.Equal(t, 0, eng.Render(target, "<p>hand written</p>"))
	assert.Equal(t, "<p>hand written</p>", target.InnerHTML())
	require.Len(t, *reported, 1)
	assert.True(t, IsKind((*reported)[0], KindMarker))
}

func TestRender_ForeignEngineMarkerIsIgnored(t *testing.T) {
	eng, reported := newTestEngine(t)
	other := NewEngine(WithLogger(console.New(console.LevelSilent)))
	target := newTarget(t)

	out := other.HTML([]string{`<button @click=`, `>x</button>`}, func() {})

	assert.Equal(t, 0, eng.Render(target, out))
	assert.Equal(t, 1, other.Pending())
	require.Len(t, *reported, 1)
	assert.True(t, IsKind((*reported)[0], KindMarker))
}

func TestRender_NestedTemplates(t *testing.T) {
	eng, reported := newTestEngine(t)
	target := newTarget(t)

	var got []string
	item := func(name string) string {
		return eng.HTML([]string{`<li @click=`, `>`, `</li>`}, func() { got = append(got, name) }, name)
	}
	list := eng.HTML([]string{`<ul @keydown=`, `>`, `</ul>`}, func() {}, []string{item("a"), item("b")})
	require.Equal(t, 3, eng.Pending())

	attached := eng.Render(target, list)

	assert.Equal(t, 3, attached)
	assert.Equal(t, 0, eng.Pending())
	assert.Empty(t, *reported)

	items := target.QueryAll("li")
	require.Len(t, items, 2)
	items[1].Dispatch(events.New("click", nil))
	items[0].Dispatch(events.New("click", nil))
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestRender_ReplacesPreviousListeners(t *testing.T) {
	eng, _ := newTestEngine(t)
	target := newTarget(t)

	eng.Render(target, eng.HTML([]string{`<button @click=`, `>x</button>`}, func() {}))
	eng.Render(target, eng.HTML([]string{`<button @click=`, `>y</button>`}, func() {}))

	assert.Equal(t, 1, dom.CountListeners(target))
	assert.Equal(t, "y", target.TextContent())
}

func TestDiscard(t *testing.T) {
	eng, _ := newTestEngine(t)

	out := eng.HTML([]string{`<button @click=`, `>x</button>`}, func() {})
	require.Equal(t, 1, eng.Pending())

	eng.Discard(out)
	assert.Equal(t, 0, eng.Pending())
}

func TestTruthy(t *testing.T) {
	var nilSlice []int
	var nilMap map[string]any
	var nilPtr *int
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"x", true},
		{0, false},
		{int64(-1), true},
		{uint8(0), false},
		{0.0, false},
		{math.NaN(), false},
		{0.5, true},
		{nilSlice, false},
		{[]int{}, true},
		{nilMap, false},
		{nilPtr, false},
		{struct{}{}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truthy(tt.value), "truthy(%#v)", tt.value)
	}
}

func TestParseDirective(t *testing.T) {
	d, ok := parseDirective(`<div class="x" @mouse-over = `)
	require.True(t, ok)
	assert.Equal(t, byte('@'), d.indicator)
	assert.Equal(t, "mouse-over", d.name)
	assert.Equal(t, `<div class="x" `, d.prefix)

	_, ok = parseDirective(`<div title=`)
	assert.False(t, ok)
}
