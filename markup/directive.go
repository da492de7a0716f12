package markup

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// directiveRe matches ?name= or @name= at the end of a segment. The
// indicator must start the segment or follow whitespace, so query strings
// such as href="/?q= are left alone.
var directiveRe = regexp.MustCompile(`(?:^|\s)([?@])([^\s"'<>/=?@]+)\s*=\s*$`)

type directive struct {
	indicator byte
	name      string
	// prefix is the segment with the directive removed.
	prefix string
}

func parseDirective(segment string) (directive, bool) {
	m := directiveRe.FindStringSubmatchIndex(segment)
	if m == nil {
		return directive{}, false
	}
	return directive{
		indicator: segment[m[2]],
		name:      segment[m[4]:m[5]],
		prefix:    segment[:m[2]],
	}, true
}

// truthy follows JavaScript truthiness for scalars. Nil pointers, slices,
// maps, funcs and channels are false; empty non-nil collections are true.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// stringify renders an interpolated value. Lists of strings, typically
// nested templates, are concatenated without a separator.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []string:
		return strings.Join(s, "")
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}
