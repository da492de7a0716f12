package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is the cause of every path syntax error.
var ErrInvalidPath = errors.New("invalid path")

// ErrPathShape is returned when a path walks into a value of the wrong kind.
var ErrPathShape = errors.New("path does not match state shape")

// PathError reports where a path failed to parse.
type PathError struct {
	Path string
	Pos  int
	Msg  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q at %d: %s", e.Path, e.Pos, e.Msg)
}

func (e *PathError) Unwrap() error { return ErrInvalidPath }

// TokenKind distinguishes property names from list indexes.
type TokenKind int

const (
	// NameToken addresses a map key.
	NameToken TokenKind = iota
	// IndexToken addresses a list element.
	IndexToken
)

// Token is one property access in a Path.
type Token struct {
	Kind  TokenKind
	Name  string
	Index int
}

// Name returns a NameToken.
func Name(name string) Token { return Token{Kind: NameToken, Name: name} }

// Index returns an IndexToken.
func Index(i int) Token { return Token{Kind: IndexToken, Index: i} }

// key is the map key used when the token addresses a map.
func (t Token) key() string {
	if t.Kind == IndexToken {
		return strconv.Itoa(t.Index)
	}
	return t.Name
}

// index is the list position used when the token addresses a list. Names
// made only of digits are accepted, so "a.0" reaches the first element.
func (t Token) index() (int, bool) {
	if t.Kind == IndexToken {
		return t.Index, true
	}
	if t.Name == "" || strings.TrimLeft(t.Name, "0123456789") != "" {
		return 0, false
	}
	i, err := strconv.Atoi(t.Name)
	return i, err == nil
}

func (t Token) String() string {
	if t.Kind == IndexToken {
		return "[" + strconv.Itoa(t.Index) + "]"
	}
	return strconv.Quote(t.Name)
}

// Path is a parsed property path.
type Path []Token

func (p Path) String() string {
	var b strings.Builder
	for i, t := range p {
		switch {
		case t.Kind == IndexToken:
			b.WriteString(t.String())
		case isPlainName(t.Name):
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(t.Name)
		default:
			b.WriteString("[" + strconv.Quote(t.Name) + "]")
		}
	}
	return b.String()
}

func isPlainName(s string) bool {
	return s != "" && !strings.ContainsAny(s, `.[]"'\`)
}

// ParsePath parses lodash-style property paths:
//
//	city.street[0].color
//	users["first.last"]
//	flags['x']
//	matrix[1][2]
//
// Bracketed integers become IndexTokens; negative indexes are rejected.
// Bracketed decimals, unquoted words and quoted strings become NameTokens.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, &PathError{Path: s, Msg: "empty path"}
	}
	var p Path
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == '[':
			tok, next, err := parseBracket(s, i)
			if err != nil {
				return nil, err
			}
			p = append(p, tok)
			i = next
		case c == '.':
			if i == 0 || i == len(s)-1 || s[i+1] == '.' || s[i+1] == '[' {
				return nil, &PathError{Path: s, Pos: i, Msg: "empty property name"}
			}
			i++
		case c == ']':
			return nil, &PathError{Path: s, Pos: i, Msg: "unexpected ]"}
		default:
			if i > 0 && s[i-1] == ']' {
				return nil, &PathError{Path: s, Pos: i, Msg: "expected . or [ after ]"}
			}
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' && s[j] != ']' {
				j++
			}
			p = append(p, Name(s[i:j]))
			i = j
		}
	}
	return p, nil
}

// parseBracket parses the bracket expression starting at s[start] == '['
// and returns the token and the position after the closing bracket.
func parseBracket(s string, start int) (Token, int, error) {
	i := start + 1
	if i < len(s) && (s[i] == '"' || s[i] == '\'') {
		quote := s[i]
		var b strings.Builder
		for i++; i < len(s) && s[i] != quote; i++ {
			if s[i] == '\\' && i+1 < len(s) {
				i++
			}
			b.WriteByte(s[i])
		}
		if i >= len(s) {
			return Token{}, 0, &PathError{Path: s, Pos: start, Msg: "unterminated quoted key"}
		}
		if i+1 >= len(s) || s[i+1] != ']' {
			return Token{}, 0, &PathError{Path: s, Pos: i + 1, Msg: "expected ] after quoted key"}
		}
		return Name(b.String()), i + 2, nil
	}

	end := strings.IndexByte(s[i:], ']')
	if end < 0 {
		return Token{}, 0, &PathError{Path: s, Pos: start, Msg: "unterminated ["}
	}
	raw := s[i : i+end]
	next := i + end + 1
	switch {
	case raw == "":
		return Token{}, 0, &PathError{Path: s, Pos: start, Msg: "empty brackets"}
	case strings.HasPrefix(raw, "-") && isDigits(raw[1:]):
		return Token{}, 0, &PathError{Path: s, Pos: start, Msg: "negative index " + raw}
	case isDigits(raw):
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Token{}, 0, &PathError{Path: s, Pos: start, Msg: "index out of range " + raw}
		}
		return Index(n), next, nil
	}
	return Name(raw), next, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
