// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package ident

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// The delimiters are all single-byte runes, so the input can be
// scanned bytewise without disturbing multibyte UTF-8 sequences.
const (
	openBracket  = '['
	closeBracket = ']'
	separator    = '.'
	maxParts     = 2
)

// InvalidNameError is returned by Parse when the input does not
// describe a name with an optional schema.
type InvalidNameError struct {
	// Raw is the unmodified input.
	Raw string
}

// Error implements error.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf(
		"the database name %q is invalid; names must be of the form [<schema>.]<name>",
		e.Raw)
}

// IsInvalid returns true if the error or one of its causes is an
// InvalidNameError.
func IsInvalid(err error) bool {
	return errors.As(err, new(*InvalidNameError))
}

// A segment is one dot-separated part of the input.
type segment struct {
	text   string // Unescaped content.
	quoted bool   // True if the segment began with a bracket.
}

// Parse converts a name of the form "name" or "schema.name" into a
// Name. Either part may be delimited with square brackets, in which
// case a literal closing bracket is written as "]]". Brackets do not
// nest; within a delimited part, only a single closing bracket is
// significant. If the input ends before a closing bracket is found, the
// delimited part extends to the end of the input.
//
// An *InvalidNameError is returned if the input contains more than two
// parts or if either part is empty.
func Parse(raw string) (Name, error) {
	segments, ok := scan(raw)
	if !ok {
		return Name{}, errors.WithStack(&InvalidNameError{Raw: raw})
	}

	var schema, name string
	switch len(segments) {
	case 1:
		name = segments[0].text
	case 2:
		schema, name = segments[0].text, segments[1].text
		if schema == "" {
			return Name{}, errors.WithStack(&InvalidNameError{Raw: raw})
		}
	}
	if name == "" {
		return Name{}, errors.WithStack(&InvalidNameError{Raw: raw})
	}
	return newName(schema, name), nil
}

// MustParse calls Parse and panics if it returns an error. This is
// intended for use by tests.
func MustParse(raw string) Name {
	ret, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return ret
}

// scan splits the input at separators that are not within a delimited
// region. It returns false if there are too many segments.
func scan(s string) ([]segment, bool) {
	segments := make([]segment, 0, maxParts)
	for pos := 0; ; {
		var seg segment
		seg, pos = scanSegment(s, pos)
		if len(segments) == maxParts {
			return nil, false
		}
		segments = append(segments, seg)

		// A segment always stops at a separator or at the end.
		if pos >= len(s) {
			return segments, true
		}
		pos++
	}
}

// scanSegment reads a single segment starting at pos. It returns the
// segment and the offset of the following separator or the length of
// the input.
func scanSegment(s string, pos int) (segment, int) {
	if pos < len(s) && s[pos] == openBracket {
		text, next := scanQuoted(s, pos+1)
		// Any trailing text before the next separator belongs to the
		// same segment.
		rest, next := scanPlain(s, next)
		return segment{text: text + rest, quoted: true}, next
	}
	text, next := scanPlain(s, pos)
	return segment{text: text}, next
}

// scanQuoted reads the content of a delimited region whose opening
// bracket precedes pos. It returns the unescaped content and the
// offset just past the closing bracket.
func scanQuoted(s string, pos int) (string, int) {
	var sb strings.Builder
	for pos < len(s) {
		c := s[pos]
		if c != closeBracket {
			sb.WriteByte(c)
			pos++
			continue
		}
		if pos+1 < len(s) && s[pos+1] == closeBracket {
			// Escaped bracket.
			sb.WriteByte(closeBracket)
			pos += 2
			continue
		}
		return sb.String(), pos + 1
	}
	return sb.String(), pos
}

// scanPlain reads up to the next separator.
func scanPlain(s string, pos int) (string, int) {
	if pos >= len(s) {
		return "", len(s)
	}
	idx := strings.IndexByte(s[pos:], separator)
	if idx < 0 {
		return s[pos:], len(s)
	}
	return s[pos : pos+idx], pos + idx
}

// needsQuoting returns true if the part cannot be written verbatim and
// parsed back into the same value.
func needsQuoting(part string) bool {
	return strings.ContainsAny(part, string(separator)+string(closeBracket)) ||
		(part != "" && part[0] == openBracket)
}

// writePart appends the part to the builder, adding delimiters only if
// necessary.
func writePart(sb *strings.Builder, part string) {
	if !needsQuoting(part) {
		sb.WriteString(part)
		return
	}
	sb.WriteByte(openBracket)
	sb.WriteString(strings.ReplaceAll(part, string(closeBracket), "]]"))
	sb.WriteByte(closeBracket)
}
