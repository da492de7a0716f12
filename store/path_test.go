package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{"count", Path{Name("count")}},
		{"city.street[0].color", Path{Name("city"), Name("street"), Index(0), Name("color")}},
		{`users["first.last"]`, Path{Name("users"), Name("first.last")}},
		{`flags['x']`, Path{Name("flags"), Name("x")}},
		{`a["say \"hi\""]`, Path{Name("a"), Name(`say "hi"`)}},
		{"matrix[1][2]", Path{Name("matrix"), Index(1), Index(2)}},
		{"[3]", Path{Index(3)}},
		{"a[1.5]", Path{Name("a"), Name("1.5")}},
		{"a[b]", Path{Name("a"), Name("b")}},
		{"windowmessage_42", Path{Name("windowmessage_42")}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePath_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"a..b",
		"a.",
		".a",
		"a.[0]",
		"a[",
		"a[]",
		"a[-1]",
		`a["x]`,
		`a["x"y]`,
		"a]b",
		"a[0]b",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePath(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPath))

			var pe *PathError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, in, pe.Path)
		})
	}
}

func TestPathString(t *testing.T) {
	p := Path{Name("a"), Name("b"), Index(0), Name("x.y")}
	assert.Equal(t, `a.b[0]["x.y"]`, p.String())

	back, err := ParsePath(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, back)
}
