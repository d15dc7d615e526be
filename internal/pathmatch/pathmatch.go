// Package pathmatch matches request paths against Ant style path templates
// such as "/oauth2/authorization/{registrationId}".
//
// A template is a sequence of "/" separated segments. A literal segment must
// match exactly (case sensitive), "{name}" captures exactly one non empty
// segment and "*" matches any single segment without capturing it.
// Placeholders never match across a separator.
package pathmatch

import (
	"errors"
	"fmt"
	"strings"
)

const separator = "/"

var ErrInvalidTemplate = errors.New("invalid path template")

type segmentKind int

const (
	literalSegment segmentKind = iota
	variableSegment
	wildcardSegment
)

type segment struct {
	kind  segmentKind
	value string // literal text or variable name
}

// Template is a parsed path template. It is immutable and safe for concurrent use.
type Template struct {
	pattern  string
	segments []segment
}

// Parse compiles pattern into a Template
func Parse(pattern string) (*Template, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidTemplate)
	}

	t := &Template{pattern: pattern}
	names := make(map[string]struct{})
	for _, token := range tokenize(pattern) {
		seg, err := parseSegment(token)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidTemplate, pattern, err)
		}
		if seg.kind == variableSegment {
			if _, dup := names[seg.value]; dup {
				return nil, fmt.Errorf("%w %q: duplicate variable %q", ErrInvalidTemplate, pattern, seg.value)
			}
			names[seg.value] = struct{}{}
		}
		t.segments = append(t.segments, seg)
	}
	return t, nil
}

func parseSegment(token string) (segment, error) {
	switch {
	case token == "*":
		return segment{kind: wildcardSegment}, nil
	case strings.HasPrefix(token, "{") && strings.HasSuffix(token, "}"):
		name := token[1 : len(token)-1]
		if name == "" || strings.ContainsAny(name, "{}") {
			return segment{}, fmt.Errorf("bad variable %q", token)
		}
		return segment{kind: variableSegment, value: name}, nil
	case strings.ContainsAny(token, "{}"):
		return segment{}, fmt.Errorf("variables must span a whole segment, got %q", token)
	}
	return segment{kind: literalSegment, value: token}, nil
}

// String returns the pattern the template was parsed from
func (t *Template) String() string {
	return t.pattern
}

// Match reports whether path matches the template and returns the captured
// variables. A non matching path returns a nil map and false.
func (t *Template) Match(path string) (map[string]string, bool) {
	if strings.HasPrefix(path, separator) != strings.HasPrefix(t.pattern, separator) {
		return nil, false
	}
	if strings.HasSuffix(path, separator) != strings.HasSuffix(t.pattern, separator) {
		return nil, false
	}

	tokens := tokenize(path)
	if len(tokens) != len(t.segments) {
		return nil, false
	}

	vars := make(map[string]string)
	for i, seg := range t.segments {
		switch seg.kind {
		case literalSegment:
			if tokens[i] != seg.value {
				return nil, false
			}
		case variableSegment:
			vars[seg.value] = tokens[i]
		}
	}
	return vars, true
}

func tokenize(path string) []string {
	var tokens []string
	for _, token := range strings.Split(path, separator) {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
