package routecore

import (
	"regexp"
	"strconv"
	"strings"
)

// SegmentKind tags which variant a Segment holds, following the same
// nodeType-tag idiom the teacher router uses for its route nodes.
type SegmentKind int

const (
	// SegmentLiteral segments match an exact substring.
	SegmentLiteral SegmentKind = iota
	// SegmentParameter segments capture a named, possibly-constrained path component.
	SegmentParameter
)

// Segment is one compiled element of a pattern: either a literal run of
// text, or a named parameter with optional anchored regex, multi-segment
// flag, and ordering stage.
type Segment struct {
	Kind SegmentKind

	// Literal fields.
	Text string

	// Parameter fields.
	Name        string
	Regex       *regexp.Regexp
	regexSource string
	Multi       bool
	Stage       int
}

// RegexSource returns the raw (unanchored) regex text the parameter was
// declared with, or "" if the parameter has no regex. Two parameter
// segments are the "same branch" when their Name, Multi and RegexSource all
// agree, per spec.
func (s Segment) RegexSource() string { return s.regexSource }

const nameChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"

func isNameChar(c byte) bool { return strings.IndexByte(nameChars, c) >= 0 }

// ParsePattern compiles a pattern string into an ordered list of Segments,
// enforcing the grammar and ambiguity invariants from spec. See the pattern
// syntax table for examples.
func ParsePattern(pattern string) ([]Segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, newSyntaxError(pattern, "pattern must start with '/'", 0)
	}

	var segments []Segment
	i := 0
	n := len(pattern)

	for i < n {
		if pattern[i] == ':' {
			seg, next, err := parseParameter(pattern, i)
			if err != nil {
				return nil, err
			}
			if len(segments) == 0 {
				return nil, newSyntaxError(pattern, "pattern must not start with a parameter", i)
			}
			if err := checkFollowsSegment(pattern, segments[len(segments)-1], i, true); err != nil {
				return nil, err
			}
			segments = append(segments, seg)
			i = next
			continue
		}

		text, next, err := parseLiteral(pattern, i)
		if err != nil {
			return nil, err
		}
		if len(segments) > 0 {
			if err := checkFollowsSegment(pattern, segments[len(segments)-1], i, false); err != nil {
				return nil, err
			}
		}
		segments = append(segments, Segment{Kind: SegmentLiteral, Text: text})
		i = next
	}

	return segments, nil
}

// checkFollowsSegment validates that prev may legally be followed by
// another segment at all (nextIsParam distinguishes the adjacent-parameter
// ambiguity check, which only applies when the following segment is
// itself a parameter).
func checkFollowsSegment(pattern string, prev Segment, pos int, nextIsParam bool) error {
	if prev.Kind != SegmentParameter {
		return nil
	}
	if prev.Multi && prev.Regex == nil {
		return newSyntaxError(pattern, "a multi parameter with no regex must be the last segment", pos)
	}
	if nextIsParam && prev.Regex == nil {
		return newSyntaxError(pattern, "two adjacent parameters are ambiguous unless the left one has a regex", pos)
	}
	return nil
}

func parseLiteral(pattern string, start int) (string, int, error) {
	var b strings.Builder
	i := start
	n := len(pattern)

	for i < n && pattern[i] != ':' {
		if pattern[i] == '\\' {
			if i+1 >= n {
				return "", 0, newSyntaxError(pattern, "dangling escape at end of pattern", i)
			}
			b.WriteByte(pattern[i+1])
			i += 2
			continue
		}
		b.WriteByte(pattern[i])
		i++
	}

	if b.Len() == 0 {
		return "", 0, newSyntaxError(pattern, "empty literal segment", start)
	}
	return b.String(), i, nil
}

func parseParameter(pattern string, start int) (Segment, int, error) {
	n := len(pattern)
	i := start + 1 // skip ':'

	nameStart := i
	for i < n && isNameChar(pattern[i]) {
		i++
	}
	if i == nameStart {
		return Segment{}, 0, newSyntaxError(pattern, "parameter name must be [A-Za-z0-9_]+", i)
	}
	name := pattern[nameStart:i]

	stage := 0
	if i < n && pattern[i] == '$' {
		j := i + 1
		digitsStart := j
		if j < n && (pattern[j] == '-' || pattern[j] == '+') {
			j++
		}
		for j < n && pattern[j] >= '0' && pattern[j] <= '9' {
			j++
		}
		if j == digitsStart {
			return Segment{}, 0, newSyntaxError(pattern, "expected a signed integer stage after '$'", j)
		}
		v, err := strconv.Atoi(pattern[digitsStart:j])
		if err != nil {
			return Segment{}, 0, newSyntaxError(pattern, "invalid stage integer: "+err.Error(), digitsStart)
		}
		stage = v
		i = j
	}

	var regexSrc string
	var rx *regexp.Regexp
	if i < n && pattern[i] == '(' {
		src, next, err := parseBalancedRegex(pattern, i)
		if err != nil {
			return Segment{}, 0, err
		}
		compiled, err := regexp.Compile("^(?:" + src + ")")
		if err != nil {
			return Segment{}, 0, newSyntaxError(pattern, "invalid regex: "+err.Error(), i)
		}
		regexSrc = src
		rx = compiled
		i = next
	}

	multi := false
	if i < n && pattern[i] == '*' {
		multi = true
		i++
	}

	return Segment{
		Kind:        SegmentParameter,
		Name:        name,
		Regex:       rx,
		regexSource: regexSrc,
		Multi:       multi,
		Stage:       stage,
	}, i, nil
}

// parseBalancedRegex reads a parenthesised regex body starting at pattern[open]
// (which must be '('), tracking depth with backslash-escaping, and returns the
// captured source (excluding the outer parens) along with the index just past
// the matching ')'.
func parseBalancedRegex(pattern string, open int) (string, int, error) {
	n := len(pattern)
	i := open + 1
	depth := 1
	var b strings.Builder

	for i < n {
		c := pattern[i]
		switch {
		case c == '\\':
			if i+1 >= n {
				return "", 0, newSyntaxError(pattern, "dangling escape inside regex", i)
			}
			b.WriteByte(c)
			b.WriteByte(pattern[i+1])
			i += 2
		case c == '(':
			depth++
			b.WriteByte(c)
			i++
		case c == ')':
			depth--
			i++
			if depth == 0 {
				if b.Len() == 0 {
					return "", 0, newSyntaxError(pattern, "empty regex body", open)
				}
				return b.String(), i, nil
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
			i++
		}
	}

	return "", 0, newSyntaxError(pattern, "unterminated regex, missing ')'", open)
}
